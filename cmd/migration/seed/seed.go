package seed

import (
	"fmt"
	"time"

	. "mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{Email: "admin@mantis.sch.id", Name: "Administrator", Role: RoleAdmin},
		{Email: "instruktur@mantis.sch.id", Name: "Pak Instruktur", Role: RoleInstructor},
		{Email: "siswa1@mantis.sch.id", Name: "Siswa Satu", Role: RoleStudent},
		{Email: "siswa2@mantis.sch.id", Name: "Siswa Dua", Role: RoleStudent},
		{Email: "siswa3@mantis.sch.id", Name: "Siswa Tiga", Role: RoleStudent},
	}
	for i := range users {
		if err := users[i].SetPassword("password"); err != nil {
			return log.Err("failed to hash seed password", err)
		}
	}
	if err := db.Create(&users).Error; err != nil {
		return log.Err("failed to seed users", err)
	}

	machines := []Machine{
		{ID: "B1", Name: "Bubut 1", CommonType: "BUBUT", Section: "Bubut Dasar", Unit: "WBS"},
		{ID: "B2", Name: "Bubut 2", CommonType: "BUBUT", Section: "Bubut Dasar", Unit: "WBS"},
		{ID: "F1", Name: "Frais 1", CommonType: "FRAIS", Section: "Frais Dasar", Unit: "WBS"},
		{ID: "F2", Name: "Frais 2", CommonType: "FRAIS", Section: "Frais Dasar", Unit: "WBS"},
	}
	if err := db.Create(&machines).Error; err != nil {
		return log.Err("failed to seed machines", err)
	}

	questions := []QuestionTemplate{
		{MachineCommonType: "BUBUT", Order: 1, Question: "Apakah sistem pendingin berfungsi dengan baik?", IsActive: true},
		{MachineCommonType: "BUBUT", Order: 2, Question: "Apakah ada kebocoran oli?", IsActive: true},
		{MachineCommonType: "BUBUT", Order: 3, Question: "Apakah rel gerak sudah dibersihkan?", IsActive: true},
		{MachineCommonType: "FRAIS", Order: 1, Question: "Apakah spindle berjalan lancar?", IsActive: true},
		{MachineCommonType: "FRAIS", Order: 2, Question: "Apakah sistem pelumasan cukup?", IsActive: true},
		{MachineCommonType: "FRAIS", Order: 3, Question: "Apakah meja kerja bersih dari serpihan?", IsActive: true},
	}
	if err := db.Create(&questions).Error; err != nil {
		return log.Err("failed to seed checklist questions", err)
	}

	questionsByType := make(map[string][]QuestionTemplate)
	for _, q := range questions {
		questionsByType[q.MachineCommonType] = append(questionsByType[q.MachineCommonType], q)
	}

	instructor := users[1]
	students := users[2:5]

	// Three months of daily reports per machine, weekends included so the
	// aggregation endpoints have something to chew on right away.
	recordCount := 0
	for month := time.April; month <= time.June; month++ {
		for day := 1; day <= 30; day++ {
			for i, machine := range machines {
				student := students[i%len(students)]
				date := time.Date(2025, month, day, 0, 0, 0, 0, time.Local)

				record := DailyMaintenance{
					MachineID:    machine.ID,
					Date:         DateOnly(date),
					StudentID:    student.ID,
					StudentName:  student.Name,
					ApprovedByID: instructor.ID,
					Status:       DailyMaintenanceStatusPending,
				}
				for j, q := range questionsByType[machine.CommonType] {
					answer := "Ya"
					if j%2 != 0 {
						answer = "Tidak"
					}
					record.Responses = append(record.Responses, QuestionResponse{
						QuestionID: q.ID,
						Answer:     answer,
					})
				}

				if err := db.Create(&record).Error; err != nil {
					return log.Err("failed to seed daily maintenance", err,
						"machine", machine.ID, "date", date.Format("2006-01-02"))
				}
				recordCount++
			}
		}
	}

	log.Info(fmt.Sprintf("Seeder finished, %d maintenance records created", recordCount))
	return nil
}
