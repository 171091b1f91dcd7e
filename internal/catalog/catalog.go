// Package catalog is the static schema registry: every table the generic
// record accessor may touch, with its columns and key field. It doubles as
// the identifier allowlist — nothing reaches SQL text unless it resolves
// through this package.
package catalog

import (
	"regexp"
	"strings"
)

// Table describes one entity table.
type Table struct {
	Name     string
	IDColumn string
	Columns  []string

	colSet map[string]struct{}
}

// Canonical table names.
const (
	TableHospitals           = "Hospitals"
	TableDoctors             = "Doctors"
	TableDonors              = "Donors"
	TablePatients            = "Patients"
	TableStemCells           = "StemCells"
	TableStorageUnits        = "StorageUnits"
	TableTreatments          = "Treatments"
	TableMarketplaceRequests = "MarketplaceRequests"
	TableUsers               = "Users"
)

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidIdentifier reports whether s is safe to appear in SQL text: letters,
// digits, and underscore only, non-empty.
func ValidIdentifier(s string) bool {
	return identPattern.MatchString(s)
}

var tables = buildRegistry([]Table{
	{
		Name:     TableHospitals,
		IDColumn: "HospitalID",
		Columns:  []string{"HospitalID", "Name", "Location", "ContactInformation"},
	},
	{
		Name:     TableDoctors,
		IDColumn: "DoctorID",
		Columns:  []string{"DoctorID", "FirstName", "LastName", "Specialization", "ContactInformation", "HospitalID"},
	},
	{
		Name:     TableDonors,
		IDColumn: "DonorID",
		Columns:  []string{"DonorID", "FirstName", "LastName", "DateOfBirth", "Gender", "ContactInformation", "Address", "MedicalHistory", "DonationHistory"},
	},
	{
		Name:     TablePatients,
		IDColumn: "PatientID",
		Columns:  []string{"PatientID", "FirstName", "LastName", "DateOfBirth", "Gender", "ContactInformation", "Address", "MedicalHistory", "DoctorID", "HospitalID"},
	},
	{
		Name:     TableStemCells,
		IDColumn: "StemCellID",
		Columns:  []string{"StemCellID", "Type", "CollectionDate", "ExpiryDate", "StorageCondition", "PatientID", "DonorID", "Status", "HospitalID"},
	},
	{
		Name:     TableStorageUnits,
		IDColumn: "StorageUnitID",
		Columns:  []string{"StorageUnitID", "Location", "Capacity", "CurrentLoad", "Temperature", "HospitalID"},
	},
	{
		Name:     TableTreatments,
		IDColumn: "TreatmentID",
		Columns:  []string{"TreatmentID", "PatientID", "DoctorID", "StemCellID", "TreatmentDate", "Outcome", "Notes"},
	},
	{
		Name:     TableMarketplaceRequests,
		IDColumn: "RequestID",
		Columns:  []string{"RequestID", "RequestType", "RequesterID", "DonorID", "StemCellID", "Status", "RequestDate", "FulfillmentDate", "Message"},
	},
	{
		Name:     TableUsers,
		IDColumn: "UserID",
		Columns:  []string{"UserID", "Username", "PasswordHash", "Role", "HospitalID"},
	},
})

func buildRegistry(defs []Table) map[string]*Table {
	m := make(map[string]*Table, len(defs))
	for i := range defs {
		t := defs[i]
		t.colSet = make(map[string]struct{}, len(t.Columns))
		for _, c := range t.Columns {
			t.colSet[c] = struct{}{}
		}
		m[strings.ToLower(t.Name)] = &t
	}
	return m
}

// Lookup resolves a table by name, case-insensitively, returning the
// canonical descriptor. The second result is false for unknown tables.
func Lookup(name string) (*Table, bool) {
	t, ok := tables[strings.ToLower(name)]
	return t, ok
}

// Tables returns the canonical names of all registered tables.
func Tables() []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return names
}

// HasColumn reports whether name is a column of t. The match is exact: column
// identifiers are stored case-sensitively because they are quoted in SQL.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colSet[name]
	return ok
}
