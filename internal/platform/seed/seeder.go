// Package seed loads a small demo dataset — hospitals, doctors, donors,
// patients, stem cells, and storage units — for developer on-boarding and
// dashboard demos. It is idempotent per run only in the sense that rerunning
// it inserts fresh rows; it never touches existing data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stembank/stembank/internal/platform/db"
)

// Result counts the rows inserted per entity.
type Result struct {
	Hospitals    int
	Doctors      int
	Donors       int
	Patients     int
	StemCells    int
	StorageUnits int
}

type hospital struct {
	name, location, contact string
}

type person struct {
	first, last, extra, contact string
}

var demoHospitals = []hospital{
	{"Central City Medical Center", "Central City", "+15550100"},
	{"Riverside General Hospital", "Riverside", "+15550101"},
	{"Lakeview Research Institute", "Lakeview", "+15550102"},
}

var demoDoctors = []person{
	{"Asha", "Raman", "Hematology", "+15550110"},
	{"Miguel", "Santos", "Oncology", "+15550111"},
	{"Elena", "Petrova", "Transplant Medicine", "+15550112"},
	{"Kwame", "Mensah", "Pediatrics", "+15550113"},
	{"Lucia", "Moretti", "Immunology", "+15550114"},
}

var demoDonors = []person{
	{"Jonas", "Berg", "O+", "+15550120"},
	{"Priya", "Nair", "A-", "+15550121"},
	{"Tomás", "Silva", "B+", "+15550122"},
	{"Hana", "Kobayashi", "AB+", "+15550123"},
	{"Farid", "Azimi", "O-", "+15550124"},
}

// Run inserts the demo dataset in one transaction so a partial seed never
// leaves the database in a half-loaded state.
func Run(ctx context.Context, pool *pgxpool.Pool) (*Result, error) {
	var res Result

	err := db.WithTx(ctx, pool, func(txCtx context.Context, tx pgx.Tx) error {
		hospitalIDs := make([]int64, 0, len(demoHospitals))
		for _, h := range demoHospitals {
			var id int64
			if err := tx.QueryRow(txCtx, `
				INSERT INTO "Hospitals" ("Name", "Location", "ContactInformation")
				VALUES ($1, $2, $3) RETURNING "HospitalID"`,
				h.name, h.location, h.contact).Scan(&id); err != nil {
				return fmt.Errorf("seed hospital %s: %w", h.name, err)
			}
			hospitalIDs = append(hospitalIDs, id)
			res.Hospitals++
		}

		doctorIDs := make([]int64, 0, len(demoDoctors))
		for i, d := range demoDoctors {
			var id int64
			if err := tx.QueryRow(txCtx, `
				INSERT INTO "Doctors" ("FirstName", "LastName", "Specialization", "ContactInformation", "HospitalID")
				VALUES ($1, $2, $3, $4, $5) RETURNING "DoctorID"`,
				d.first, d.last, d.extra, d.contact, hospitalIDs[i%len(hospitalIDs)]).Scan(&id); err != nil {
				return fmt.Errorf("seed doctor %s %s: %w", d.first, d.last, err)
			}
			doctorIDs = append(doctorIDs, id)
			res.Doctors++
		}

		donorIDs := make([]int64, 0, len(demoDonors))
		for i, d := range demoDonors {
			var id int64
			dob := time.Date(1980+i*3, time.Month(1+i*2), 10+i, 0, 0, 0, 0, time.UTC)
			if err := tx.QueryRow(txCtx, `
				INSERT INTO "Donors" ("FirstName", "LastName", "DateOfBirth", "Gender", "ContactInformation", "MedicalHistory", "DonationHistory")
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING "DonorID"`,
				d.first, d.last, dob, "Other", d.contact,
				"Blood type "+d.extra, "").Scan(&id); err != nil {
				return fmt.Errorf("seed donor %s %s: %w", d.first, d.last, err)
			}
			donorIDs = append(donorIDs, id)
			res.Donors++
		}

		patientIDs := make([]int64, 0, 3)
		for i := 0; i < 3; i++ {
			var id int64
			dob := time.Date(1995+i*5, time.March, 5+i, 0, 0, 0, 0, time.UTC)
			if err := tx.QueryRow(txCtx, `
				INSERT INTO "Patients" ("FirstName", "LastName", "DateOfBirth", "Gender", "ContactInformation", "DoctorID", "HospitalID")
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING "PatientID"`,
				fmt.Sprintf("Patient%d", i+1), "Demo", dob, "Other",
				fmt.Sprintf("+1555013%d", i),
				doctorIDs[i%len(doctorIDs)], hospitalIDs[i%len(hospitalIDs)]).Scan(&id); err != nil {
				return fmt.Errorf("seed patient %d: %w", i+1, err)
			}
			patientIDs = append(patientIDs, id)
			res.Patients++
		}

		cellTypes := []string{"Hematopoietic", "Mesenchymal", "Embryonic", "Neural"}
		for i, donorID := range donorIDs {
			expiry := time.Now().AddDate(0, 6+i, 0)
			if _, err := tx.Exec(txCtx, `
				INSERT INTO "StemCells" ("Type", "CollectionDate", "ExpiryDate", "StorageCondition", "DonorID", "Status", "HospitalID")
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				cellTypes[i%len(cellTypes)], time.Now().AddDate(0, -1, 0), expiry,
				"-196C liquid nitrogen", donorID, "Available",
				hospitalIDs[i%len(hospitalIDs)]); err != nil {
				return fmt.Errorf("seed stem cell for donor %d: %w", donorID, err)
			}
			res.StemCells++
		}

		for i, hospitalID := range hospitalIDs {
			if _, err := tx.Exec(txCtx, `
				INSERT INTO "StorageUnits" ("Location", "Capacity", "CurrentLoad", "Temperature", "HospitalID")
				VALUES ($1, $2, $3, $4, $5)`,
				fmt.Sprintf("Cryo Wing %c", 'A'+i), 500, 120+40*i, -196.0, hospitalID); err != nil {
				return fmt.Errorf("seed storage unit for hospital %d: %w", hospitalID, err)
			}
			res.StorageUnits++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
