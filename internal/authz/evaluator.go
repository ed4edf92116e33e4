package authz

// Subject yetki kontrolünün öznesi: kimliği doğrulanmış kullanıcının
// çözülmüş yetki kümesi. Permission set'i bir kez kurulur, istek
// süresince salt okunurdur; Evaluate O(1) map lookup yapar.
type Subject struct {
	UserID       int
	IsSuperAdmin bool
	permissions  map[Code]struct{}
}

// NewSubject çözülmüş yetki kodlarından subject oluşturur
func NewSubject(userID int, isSuperAdmin bool, codes []string) *Subject {
	perms := make(map[Code]struct{}, len(codes))
	for _, c := range codes {
		perms[Code(c)] = struct{}{}
	}
	return &Subject{
		UserID:       userID,
		IsSuperAdmin: isSuperAdmin,
		permissions:  perms,
	}
}

// Decision yetki kontrolünün sonucu. SuperAdmin alanı bypass'in
// kullanıldığını açıkça işaretler; middleware bunu loglar.
type Decision struct {
	Allowed    bool
	SuperAdmin bool
}

// Evaluate subject'in verilen yetki koduna sahip olup olmadığını döner.
// Fail closed: subject yok, kod boş veya registry dışı -> deny.
func Evaluate(sub *Subject, code Code) Decision {
	if sub == nil || code == "" || !Known(code) {
		return Decision{}
	}
	if sub.IsSuperAdmin {
		return Decision{Allowed: true, SuperAdmin: true}
	}
	_, ok := sub.permissions[code]
	return Decision{Allowed: ok}
}

// HasPermission Evaluate'in boolean kısayolu
func HasPermission(sub *Subject, code Code) bool {
	return Evaluate(sub, code).Allowed
}
