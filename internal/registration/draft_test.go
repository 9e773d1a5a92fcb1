package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() *Draft {
	d := NewDraft("draft-1")
	d.FullName = "Asha Verma"
	d.Email = "asha@example.com"
	d.Password = "secret123"
	d.ConfirmPassword = "secret123"
	d.Gender = "female"
	d.Mobile = "9876543210"
	d.City = "Bangalore"
	d.Location = "Koramangala"
	d.Occupation = "Designer"
	d.IDType = "pan"
	d.IDNumber = "ABCDE1234F"
	d.IDFile = &FileRef{
		Name:     "pan.pdf",
		MIMEType: "application/pdf",
		Size:     1024,
		URL:      "http://localhost:8080/uploads/documents/pan.pdf",
	}
	return d
}

func TestDraft_Next_EmptyStepOne(t *testing.T) {
	d := NewDraft("draft-1")

	errs := d.Next()

	assert.Equal(t, StepBasicInfo, d.Step)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "confirm_password")
}

func TestDraft_Next_ErrorsOnlyForInvalidFields(t *testing.T) {
	d := NewDraft("draft-1")
	require.NoError(t, d.SetField("full_name", "Asha Verma"))
	require.NoError(t, d.SetField("email", "not-an-email"))
	require.NoError(t, d.SetField("password", "12345"))
	require.NoError(t, d.SetField("confirm_password", "12345"))

	errs := d.Next()

	assert.Equal(t, StepBasicInfo, d.Step)
	assert.Len(t, errs, 2)
	assert.Equal(t, "Please enter a valid email", errs["email"])
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])
}

func TestDraft_Next_PasswordMismatch(t *testing.T) {
	d := validDraft()
	d.ConfirmPassword = "different"

	errs := d.Next()

	assert.Equal(t, StepBasicInfo, d.Step)
	assert.Equal(t, FieldErrors{"confirm_password": "Passwords don't match"}, errs)
}

func TestDraft_Next_AdvancesThroughAllSteps(t *testing.T) {
	d := validDraft()

	assert.Nil(t, d.Next())
	assert.Equal(t, StepPersonalDetails, d.Step)
	assert.Nil(t, d.Next())
	assert.Equal(t, StepGovernmentID, d.Step)
	assert.Nil(t, d.Next())
	assert.Equal(t, StepOrganizationalDetails, d.Step)

	// Потолок: дальше четвёртого шага продвижения нет.
	assert.Nil(t, d.Next())
	assert.Equal(t, StepOrganizationalDetails, d.Step)
}

func TestDraft_Next_StepTwoValidation(t *testing.T) {
	d := validDraft()
	require.Nil(t, d.Next())

	d.Gender = "unknown"
	d.Mobile = "1234567890"
	d.City = ""

	errs := d.Next()

	assert.Equal(t, StepPersonalDetails, d.Step)
	assert.Len(t, errs, 3)
	assert.Equal(t, "Gender is required", errs["gender"])
	assert.Equal(t, "Please enter a valid 10-digit Indian mobile number", errs["mobile"])
	assert.Equal(t, "City is required", errs["city"])
}

func TestDraft_Next_StepThreeValidation(t *testing.T) {
	tests := []struct {
		name     string
		idType   string
		idNumber string
		wantMsg  string
	}{
		{
			name:     "aadhaar too short",
			idType:   "aadhaar",
			idNumber: "12345678901",
			wantMsg:  "Aadhaar number must be 12 digits",
		},
		{
			name:     "aadhaar with letters",
			idType:   "aadhaar",
			idNumber: "12345678901a",
			wantMsg:  "Aadhaar number must be 12 digits",
		},
		{
			name:     "pan wrong shape",
			idType:   "pan",
			idNumber: "AB1234567F",
			wantMsg:  "Please enter a valid PAN number",
		},
		{
			name:     "voter id has no shape check",
			idType:   "voter",
			idNumber: "whatever-123",
			wantMsg:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			require.Nil(t, d.Next())
			require.Nil(t, d.Next())

			d.IDType = tt.idType
			d.IDNumber = tt.idNumber

			errs := d.Next()
			if tt.wantMsg == "" {
				assert.Nil(t, errs)
				assert.Equal(t, StepOrganizationalDetails, d.Step)
			} else {
				assert.Equal(t, StepGovernmentID, d.Step)
				assert.Equal(t, tt.wantMsg, errs["id_number"])
			}
		})
	}
}

func TestDraft_Next_StepThreeRequiresFile(t *testing.T) {
	d := validDraft()
	d.IDFile = nil
	require.Nil(t, d.Next())
	require.Nil(t, d.Next())

	errs := d.Next()

	assert.Equal(t, StepGovernmentID, d.Step)
	assert.Equal(t, FieldErrors{"id_file": "Please upload your ID document"}, errs)
}

func TestDraft_StepFour_OnlyWithReimbursement(t *testing.T) {
	d := validDraft()
	d.Step = StepOrganizationalDetails

	// Флаг выключен: пустые поля организации не мешают.
	d.NeedsReimbursement = false
	assert.Nil(t, d.validateStep(StepOrganizationalDetails))

	// Флаг включен: все поля обязательны.
	d.NeedsReimbursement = true
	errs := d.validateStep(StepOrganizationalDetails)
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "organization_name")
	assert.Contains(t, errs, "gst_number")
	assert.Contains(t, errs, "organization_location")
}

func TestDraft_PreviousThenNext_Idempotent(t *testing.T) {
	d := validDraft()
	require.Nil(t, d.Next())
	require.Nil(t, d.Next())
	require.Equal(t, StepGovernmentID, d.Step)

	d.Previous()
	assert.Equal(t, StepPersonalDetails, d.Step)
	assert.Nil(t, d.Errors)

	errs := d.Next()
	assert.Nil(t, errs)
	assert.Equal(t, StepGovernmentID, d.Step)
	assert.Nil(t, d.Errors)
}

func TestDraft_Previous_FloorAndErrorReset(t *testing.T) {
	d := NewDraft("draft-1")
	d.Next()
	require.NotNil(t, d.Errors)

	d.Previous()

	assert.Equal(t, StepBasicInfo, d.Step)
	assert.Nil(t, d.Errors)
}

func TestDraft_SetField_ClearsFieldError(t *testing.T) {
	d := NewDraft("draft-1")
	d.Next()
	require.Contains(t, d.Errors, "email")

	require.NoError(t, d.SetField("email", "asha@example.com"))

	assert.NotContains(t, d.Errors, "email")
	assert.Contains(t, d.Errors, "password")
}

func TestDraft_SetField_UnknownField(t *testing.T) {
	d := NewDraft("draft-1")
	assert.Error(t, d.SetField("favourite_color", "green"))
}

func TestDraft_SetField_ReimbursementFlag(t *testing.T) {
	d := NewDraft("draft-1")

	require.NoError(t, d.SetField("needs_reimbursement", true))
	assert.True(t, d.NeedsReimbursement)

	require.NoError(t, d.SetField("needs_reimbursement", "false"))
	assert.False(t, d.NeedsReimbursement)

	assert.Error(t, d.SetField("needs_reimbursement", "maybe"))
	assert.Error(t, d.SetField("needs_reimbursement", 42))
}

func TestDraft_AttachFile(t *testing.T) {
	d := NewDraft("draft-1")

	ok := d.AttachFile(FileRef{
		Name:     "id.png",
		MIMEType: "image/png",
		Size:     4 * 1024 * 1024,
		URL:      "http://localhost:8080/uploads/documents/id.png",
	})
	require.True(t, ok)
	require.NotNil(t, d.IDFile)
	firstURL := d.IDFile.URL

	// Недопустимый файл отклоняется и не трогает сохранённую ссылку.
	ok = d.AttachFile(FileRef{
		Name:     "notes.txt",
		MIMEType: "text/plain",
		Size:     100,
		URL:      "http://localhost:8080/uploads/documents/notes.txt",
	})
	assert.False(t, ok)
	assert.Equal(t, "Please upload a JPG, PNG, or PDF file", d.Errors["id_file"])
	assert.Equal(t, firstURL, d.IDFile.URL)

	// Слишком большой файл отклоняется так же.
	ok = d.AttachFile(FileRef{
		Name:     "big.pdf",
		MIMEType: "application/pdf",
		Size:     6 * 1024 * 1024,
		URL:      "http://localhost:8080/uploads/documents/big.pdf",
	})
	assert.False(t, ok)
	assert.Equal(t, "File size must be less than 5MB", d.Errors["id_file"])
	assert.Equal(t, firstURL, d.IDFile.URL)

	// Корректный файл заменяет ссылку и снимает ошибку.
	ok = d.AttachFile(FileRef{
		Name:     "id2.pdf",
		MIMEType: "application/pdf",
		Size:     4 * 1024 * 1024,
		URL:      "http://localhost:8080/uploads/documents/id2.pdf",
	})
	assert.True(t, ok)
	assert.NotContains(t, d.Errors, "id_file")
	assert.Equal(t, "http://localhost:8080/uploads/documents/id2.pdf", d.IDFile.URL)
}
