// Package registration реализует многошаговую регистрационную форму:
// черновик с четырьмя шагами, пошаговую валидацию полей и финальную
// отправку, создающую учётную запись со статусом pending.
//
// Черновик живет только до отправки: хранится в Redis с ограниченным
// временем жизни и никогда не попадает в PostgreSQL.
package registration

import (
	"fmt"
	"strconv"
)

// Номера шагов регистрационной формы. Порядок фиксированный.
const (
	// StepBasicInfo — имя, почта, пароль.
	StepBasicInfo = 1
	// StepPersonalDetails — пол, телефон, город, адрес, род занятий.
	StepPersonalDetails = 2
	// StepGovernmentID — документ, удостоверяющий личность.
	StepGovernmentID = 3
	// StepOrganizationalDetails — данные организации для компенсации.
	StepOrganizationalDetails = 4
)

// FieldErrors — сообщения об ошибках по именам полей.
type FieldErrors map[string]string

// FileRef описывает загруженный скан документа.
type FileRef struct {
	Name     string `json:"name"`      // Исходное имя файла
	MIMEType string `json:"mime_type"` // MIME-тип
	Size     int64  `json:"size"`      // Размер в байтах
	URL      string `json:"url"`       // Публичный URL сохранённого объекта
}

// Draft — черновик регистрационной формы. Все изменения полей локальны
// и синхронны; единственный побочный эффект — создание учётной записи
// при отправке.
type Draft struct {
	ID   string `json:"id"`
	Step int    `json:"step"`

	// Шаг 1: основная информация
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`

	// Шаг 2: анкетные данные
	Gender     string `json:"gender"`
	Mobile     string `json:"mobile"`
	City       string `json:"city"`
	Location   string `json:"location"`
	Occupation string `json:"occupation"`

	// Шаг 3: документ
	IDType   string   `json:"id_type"`
	IDNumber string   `json:"id_number"`
	IDFile   *FileRef `json:"id_file,omitempty"`

	// Шаг 4: организация
	NeedsReimbursement   bool   `json:"needs_reimbursement"`
	OrganizationName     string `json:"organization_name"`
	GSTNumber            string `json:"gst_number"`
	OrganizationLocation string `json:"organization_location"`

	// Ошибки последней неудачной проверки шага.
	Errors FieldErrors `json:"errors,omitempty"`
}

// NewDraft создает пустой черновик на первом шаге.
func NewDraft(id string) *Draft {
	return &Draft{
		ID:   id,
		Step: StepBasicInfo,
	}
}

// SetField записывает значение в поле черновика по его имени.
// Сброшенная при вводе ошибка поля исчезает из Errors.
func (d *Draft) SetField(name string, value any) error {
	str := func() string {
		s, _ := value.(string)
		return s
	}

	switch name {
	case "full_name":
		d.FullName = str()
	case "email":
		d.Email = str()
	case "password":
		d.Password = str()
	case "confirm_password":
		d.ConfirmPassword = str()
	case "gender":
		d.Gender = str()
	case "mobile":
		d.Mobile = str()
	case "city":
		d.City = str()
	case "location":
		d.Location = str()
	case "occupation":
		d.Occupation = str()
	case "id_type":
		d.IDType = str()
	case "id_number":
		d.IDNumber = str()
	case "needs_reimbursement":
		switch v := value.(type) {
		case bool:
			d.NeedsReimbursement = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("field needs_reimbursement expects a boolean, got %q", v)
			}
			d.NeedsReimbursement = parsed
		default:
			return fmt.Errorf("field needs_reimbursement expects a boolean")
		}
	case "organization_name":
		d.OrganizationName = str()
	case "gst_number":
		d.GSTNumber = str()
	case "organization_location":
		d.OrganizationLocation = str()
	default:
		return fmt.Errorf("unknown field %q", name)
	}

	if d.Errors != nil {
		delete(d.Errors, name)
		if len(d.Errors) == 0 {
			d.Errors = nil
		}
	}
	return nil
}

// Next проверяет только текущий шаг. При ошибках шаг не меняется и
// сообщения сохраняются в Errors; иначе индекс шага растет с потолком 4.
func (d *Draft) Next() FieldErrors {
	errs := d.validateStep(d.Step)
	if len(errs) > 0 {
		d.Errors = errs
		return errs
	}
	d.Errors = nil
	if d.Step < StepOrganizationalDetails {
		d.Step++
	}
	return nil
}

// Previous уменьшает индекс шага с полом 1 и сбрасывает все ошибки,
// повторная проверка не выполняется.
func (d *Draft) Previous() {
	if d.Step > StepBasicInfo {
		d.Step--
	}
	d.Errors = nil
}

// AttachFile проверяет ограничения на файл и, если они выполнены,
// сохраняет ссылку. Нарушение даёт ошибку поля id_file и не трогает
// уже сохранённую ссылку.
func (d *Draft) AttachFile(ref FileRef) bool {
	if msg := ValidateFile(ref.MIMEType, ref.Size); msg != "" {
		if d.Errors == nil {
			d.Errors = FieldErrors{}
		}
		d.Errors["id_file"] = msg
		return false
	}
	d.IDFile = &ref
	if d.Errors != nil {
		delete(d.Errors, "id_file")
		if len(d.Errors) == 0 {
			d.Errors = nil
		}
	}
	return true
}
