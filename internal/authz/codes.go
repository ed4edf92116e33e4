package authz

// Code tek bir verilebilir aksiyonu temsil eden yetki kodu
type Code string

// Sistemdeki tüm yetki kodları. Route kayıtları bu sabitleri kullanır;
// registry dışında bir kod her zaman deny ile sonuçlanır.
const (
	// Cari yetkileri
	CarilerGoruntuleme Code = "cariler_goruntuleme"
	CarilerEkleme      Code = "cariler_ekleme"
	CarilerDuzenleme   Code = "cariler_duzenleme"
	CarilerSilme       Code = "cariler_silme"

	// Etkinlik yetkileri
	EtkinliklerGoruntuleme Code = "etkinlikler_goruntuleme"
	EtkinliklerEkleme      Code = "etkinlikler_ekleme"
	EtkinliklerDuzenleme   Code = "etkinlikler_duzenleme"
	EtkinliklerSilme       Code = "etkinlikler_silme"

	// Finans yetkileri
	FinansGoruntuleme Code = "finans_goruntuleme"
	FinansEkleme      Code = "finans_ekleme"
	FinansSilme       Code = "finans_silme"

	// Kullanıcı yönetimi
	KullanicilarGoruntuleme Code = "kullanicilar_goruntuleme"
	KullanicilarDuzenleme   Code = "kullanicilar_duzenleme"
	KullanicilarSilme       Code = "kullanicilar_silme"

	// Rol ve yetki yönetimi
	RollerYonetimi Code = "roller_yonetimi"

	// Audit log görüntüleme
	LoglarGoruntuleme Code = "loglar_goruntuleme"
)

// registry kapalı yetki kümesi: kod -> açıklama
var registry = map[Code]string{
	CarilerGoruntuleme:      "Carileri görüntüleme",
	CarilerEkleme:           "Cari ekleme",
	CarilerDuzenleme:        "Cari düzenleme",
	CarilerSilme:            "Cari silme",
	EtkinliklerGoruntuleme:  "Etkinlikleri görüntüleme",
	EtkinliklerEkleme:       "Etkinlik ekleme",
	EtkinliklerDuzenleme:    "Etkinlik düzenleme",
	EtkinliklerSilme:        "Etkinlik silme",
	FinansGoruntuleme:       "Finans kayıtlarını görüntüleme",
	FinansEkleme:            "Finans kaydı ekleme",
	FinansSilme:             "Finans kaydı silme",
	KullanicilarGoruntuleme: "Kullanıcıları görüntüleme",
	KullanicilarDuzenleme:   "Kullanıcı düzenleme",
	KullanicilarSilme:       "Kullanıcı silme",
	RollerYonetimi:          "Rol ve yetki yönetimi",
	LoglarGoruntuleme:       "Audit loglarını görüntüleme",
}

// Known kodun registry'de tanımlı olup olmadığını döner
func Known(code Code) bool {
	_, ok := registry[code]
	return ok
}

// Describe kodun açıklamasını döner
func Describe(code Code) string {
	return registry[code]
}

// AllCodes registry'deki tüm kodları döner (startup seed ve listeleme için)
func AllCodes() []Code {
	codes := make([]Code, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
