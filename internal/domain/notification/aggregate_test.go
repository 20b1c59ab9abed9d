package notification

import (
	"testing"

	"farmatime/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob() entity.Job {
	return entity.Job{
		ID:       "job-1",
		IsActive: true,
		Doctor:   entity.Doctor{Name: "Dr. Rossi", Email: "rossi@clinic.test"},
		Patient:  entity.Patient{FirstName: "Anna", LastName: "Bianchi", Email: "anna@example.test"},
	}
}

func testUser() *entity.User {
	return &entity.User{
		ID:        "user-1",
		Email:     "mario@example.test",
		FirstName: "Mario",
		LastName:  "Verdi",
	}
}

func testMedicines() []entity.Medicine {
	return []entity.Medicine{
		{ID: "med-1", Name: "Aspirin"},
		{ID: "med-2", Name: "Ibuprofen"},
		{ID: "med-3", Name: "Paracetamol"},
	}
}

func TestAggregateUnified(t *testing.T) {
	template := entity.EmailTemplate{Subject: "Refill", Body: "Please refill [MEDICINE NAME]"}

	requests := Aggregate(testJob(), testUser(), template, testMedicines(), true)

	require.Len(t, requests, 1)
	r := requests[0]
	assert.Equal(t, "rossi@clinic.test", r.To)
	assert.Equal(t, "Dr. Rossi", r.ToName)
	assert.Equal(t, "Mario Verdi", r.FromName)
	assert.Equal(t, "anna@example.test", r.ReplyTo)
	assert.Equal(t, "Anna Bianchi", r.ReplyToName)
	assert.Equal(t, "Refill", r.Subject)
	assert.Equal(t, "Please refill Aspirin<br />Ibuprofen<br />Paracetamol", r.HTMLContent)
	assert.Equal(t, []string{"med-1", "med-2", "med-3"}, r.MedicineIDs)
}

func TestAggregateSeparate(t *testing.T) {
	template := entity.EmailTemplate{Subject: "Refill", Body: "Please refill [MEDICINE NAME]"}

	requests := Aggregate(testJob(), testUser(), template, testMedicines(), false)

	require.Len(t, requests, 3)
	for i, name := range []string{"Aspirin", "Ibuprofen", "Paracetamol"} {
		assert.Equal(t, []string{testMedicines()[i].ID}, requests[i].MedicineIDs)
		assert.Equal(t, "Please refill "+name, requests[i].HTMLContent)
		assert.Equal(t, "rossi@clinic.test", requests[i].To)
	}
}

func TestAggregateNoDueMedicines(t *testing.T) {
	template := entity.EmailTemplate{Subject: "Refill", Body: "body"}

	assert.Nil(t, Aggregate(testJob(), testUser(), template, nil, true))
	assert.Nil(t, Aggregate(testJob(), testUser(), template, []entity.Medicine{}, false))
}

func TestAggregateFromNameFallsBackToPatient(t *testing.T) {
	user := testUser()
	user.FirstName = ""
	user.LastName = ""

	requests := Aggregate(testJob(), user, entity.EmailTemplate{Subject: "s", Body: "b"}, testMedicines()[:1], true)

	require.Len(t, requests, 1)
	assert.Equal(t, "Anna Bianchi", requests[0].FromName)
}

func TestExpandTemplate(t *testing.T) {
	body := "Dear [DOCTOR NAME], [PATIENT NAME] needs [MEDICINE NAME]. Sent by [USER NAME] ([USER EMAIL])."

	expanded := ExpandTemplate(body, testJob(), testMedicines()[:1], testUser())

	assert.Equal(t, "Dear Dr. Rossi, Anna Bianchi needs Aspirin. Sent by Mario Verdi (mario@example.test).", expanded)
}

func TestExpandTemplateKeepsUnresolvedTokens(t *testing.T) {
	job := testJob()
	job.Doctor.Name = ""
	user := testUser()
	user.Email = ""

	expanded := ExpandTemplate("[DOCTOR NAME] / [USER EMAIL] / [MEDICINE NAME]", job, testMedicines()[:1], user)

	assert.Equal(t, "[DOCTOR NAME] / [USER EMAIL] / Aspirin", expanded)
}

func TestExpandTemplateIsCaseAndBracketExact(t *testing.T) {
	expanded := ExpandTemplate("[doctor name] DOCTOR NAME [DOCTOR NAME]", testJob(), nil, testUser())

	assert.Equal(t, "[doctor name] DOCTOR NAME Dr. Rossi", expanded)
}
