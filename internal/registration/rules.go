package registration

import "regexp"

// Предельный размер загружаемого документа — 5 МиБ.
const MaxFileSize = 5 * 1024 * 1024

// Регулярные выражения для проверки форм полей.
var (
	// EmailRe — базовая форма local@domain.
	EmailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	// MobileRe — индийский мобильный номер: 10 цифр, первая 6-9.
	MobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	// AadhaarRe — номер Aadhaar: ровно 12 цифр.
	AadhaarRe = regexp.MustCompile(`^\d{12}$`)
	// PANRe — номер PAN: 5 букв, 4 цифры, 1 буква.
	PANRe = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	// GSTRe — номер GST: 15 символов с литералом Z на 14-й позиции.
	GSTRe = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

var genders = map[string]struct{}{
	"male":              {},
	"female":            {},
	"other":             {},
	"prefer-not-to-say": {},
}

var idTypes = map[string]struct{}{
	"pan":     {},
	"aadhaar": {},
	"voter":   {},
	"driving": {},
}

var allowedFileTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
}

// ValidateFile проверяет MIME-тип и размер загружаемого документа.
// Возвращает текст ошибки или пустую строку.
func ValidateFile(mimeType string, size int64) string {
	if _, ok := allowedFileTypes[mimeType]; !ok {
		return "Please upload a JPG, PNG, or PDF file"
	}
	if size > MaxFileSize {
		return "File size must be less than 5MB"
	}
	return ""
}

// validateStep проверяет все правила указанного шага. Правила не
// обрываются на первой ошибке: на каждое непрошедшее поле приходится
// ровно одно сообщение.
func (d *Draft) validateStep(step int) FieldErrors {
	errs := FieldErrors{}

	switch step {
	case StepBasicInfo:
		if d.FullName == "" {
			errs["full_name"] = "Full name is required"
		}
		if d.Email == "" {
			errs["email"] = "Email is required"
		} else if !EmailRe.MatchString(d.Email) {
			errs["email"] = "Please enter a valid email"
		}
		if d.Password == "" {
			errs["password"] = "Password is required"
		} else if len(d.Password) < 6 {
			errs["password"] = "Password must be at least 6 characters"
		}
		if d.ConfirmPassword == "" {
			errs["confirm_password"] = "Please confirm your password"
		} else if d.Password != d.ConfirmPassword {
			errs["confirm_password"] = "Passwords don't match"
		}

	case StepPersonalDetails:
		if _, ok := genders[d.Gender]; !ok {
			errs["gender"] = "Gender is required"
		}
		if d.Mobile == "" {
			errs["mobile"] = "Mobile number is required"
		} else if !MobileRe.MatchString(d.Mobile) {
			errs["mobile"] = "Please enter a valid 10-digit Indian mobile number"
		}
		if d.City == "" {
			errs["city"] = "City is required"
		}
		if d.Location == "" {
			errs["location"] = "Location is required"
		}
		if d.Occupation == "" {
			errs["occupation"] = "Occupation is required"
		}

	case StepGovernmentID:
		if _, ok := idTypes[d.IDType]; !ok {
			errs["id_type"] = "ID type is required"
		}
		if d.IDNumber == "" {
			errs["id_number"] = "ID number is required"
		} else if d.IDType == "aadhaar" && !AadhaarRe.MatchString(d.IDNumber) {
			errs["id_number"] = "Aadhaar number must be 12 digits"
		} else if d.IDType == "pan" && !PANRe.MatchString(d.IDNumber) {
			errs["id_number"] = "Please enter a valid PAN number"
		}
		if d.IDFile == nil {
			errs["id_file"] = "Please upload your ID document"
		}

	case StepOrganizationalDetails:
		// Шаг проверяется только при включённом флаге компенсации.
		if !d.NeedsReimbursement {
			break
		}
		if d.OrganizationName == "" {
			errs["organization_name"] = "Organization name is required"
		}
		if d.GSTNumber == "" {
			errs["gst_number"] = "GST number is required"
		} else if !GSTRe.MatchString(d.GSTNumber) {
			errs["gst_number"] = "Please enter a valid 15-character GST number"
		}
		if d.OrganizationLocation == "" {
			errs["organization_location"] = "Organization location is required"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
