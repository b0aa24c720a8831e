package services

// User-facing messages. Clients match on these strings, keep them stable.
const (
	msgUnauthenticated = "User tidak terautentikasi"

	msgIdeaNameRequired   = "Nama ide wajib diisi"
	msgIdeaNameEmpty      = "Nama ide tidak boleh kosong"
	msgIdeaNameTooLong    = "Nama ide maksimal 100 karakter"
	msgDescriptionTooLong = "Deskripsi maksimal 1000 karakter"
	msgStatusInvalid      = "Status tidak valid"
	msgTagsNotArray       = "Tags harus berupa array id"
	msgTagUnresolvable    = "Salah satu tag tidak ditemukan atau bukan milik Anda"
	msgIdeaNotOwned       = "Idea tidak ditemukan atau bukan milik Anda"
	msgIdeaNotFound       = "Idea tidak ditemukan"
	msgIdeaTaken          = "Idea sudah diambil oleh orang lain"
	msgReleaseForbidden   = "Tidak diizinkan melepaskan idea ini"
	msgCompleteForbidden  = "Tidak diizinkan menyelesaikan idea ini"
	msgTargetUserRequired = "User id diperlukan"
	msgTargetUserInvalid  = "User id tidak valid"

	msgTagNameRequired = "Nama tag wajib diisi"
	msgTagNameEmpty    = "Nama tag tidak boleh kosong"
	msgTagDuplicate    = "Tag dengan nama yang sama sudah ada"
	msgTagNotOwned     = "Tag tidak ditemukan atau bukan milik Anda"

	msgUsernameTaken      = "Username sudah digunakan"
	msgInvalidCredentials = "Username atau password salah"
	msgTokenInvalid       = "Token tidak valid"
)

// MsgTagsNotArray is reported by request decoders when "tags" is present but
// is not a JSON array of ids.
const MsgTagsNotArray = msgTagsNotArray
