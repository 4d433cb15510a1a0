package service

import "strings"

// Error is a user-facing service failure. The message is what the API
// returns in "detail".
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrUnauthorized       Error = "Kimlik doğrulanamadı"
	ErrInvalidCredentials Error = "Kullanıcı adı veya şifre hatalı"
	ErrUserInactive       Error = "Kullanıcı aktif değil"
	ErrForbidden          Error = "Bu işlem için yetkiniz yok"

	ErrUserNotFound     Error = "Kullanıcı bulunamadı"
	ErrUsernameTaken    Error = "Bu kullanıcı adı zaten kayıtlı"
	ErrPasswordTooShort Error = "Şifre en az 6 karakter olmalıdır"
	ErrInvalidRole      Error = "Geçersiz kullanıcı rolü"
	ErrSelfDelete       Error = "Kendi hesabınızı silemezsiniz"
	ErrSelfDeactivate   Error = "Kendi hesabınızı pasif hale getiremezsiniz"

	ErrCustomerNotFound           Error = "Müşteri bulunamadı"
	ErrCustomerHasOpenInspections Error = "Müşterinin açık denetimleri var, silinemez"

	ErrTemplateNotFound     Error = "Template bulunamadı"
	ErrInvalidTemplateType  Error = "Template tipi FORM veya REPORT olmalıdır"
	ErrDuplicateTemplateIDs Error = "Kontrol maddesi numaraları benzersiz olmalıdır"

	ErrInspectionNotFound      Error = "Denetim bulunamadı"
	ErrInspectorNotFound       Error = "Denetçi bulunamadı"
	ErrInspectorNotEligible    Error = "Seçilen kullanıcı aktif bir denetçi değil"
	ErrDuplicateOpenInspection Error = "Bu ekipman için zaten açık bir denetim var"
	ErrInvalidStatus           Error = "Geçersiz denetim durumu"
	ErrSameStatus              Error = "Denetim zaten bu durumda"
	ErrTransitionNotAllowed    Error = "Bu durum değişikliğine izin verilmiyor"
	ErrInspectionNotDeletable  Error = "Sadece beklemedeki denetimler silinebilir"
	ErrNotAwaitingApproval     Error = "Denetim onay bekleyen durumda değil"
	ErrInvalidApprovalAction   Error = "Geçersiz işlem, 'approve' veya 'reject' olmalıdır"
	ErrFormNotEditable         Error = "Bu denetimin formu artık düzenlenemez"
)

// ValidationError carries per-field or per-item details next to the message.
type ValidationError struct {
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	return e.Message + " (" + strings.Join(keys, ", ") + ")"
}
