package domain

// CalcType identifies a calculation sheet. Each type has its own records
// table and its own input/result shapes in the calc package.
type CalcType string

const (
	CalcTypeValve  CalcType = "valve"
	CalcTypeDC001  CalcType = "dc001"
	CalcTypeDC001A CalcType = "dc001a"
	CalcTypeDC002  CalcType = "dc002"
	CalcTypeDC002A CalcType = "dc002a"
	CalcTypeDC003  CalcType = "dc003"
	CalcTypeDC004  CalcType = "dc004"
	CalcTypeDC005  CalcType = "dc005"
	CalcTypeDC005A CalcType = "dc005a"
	CalcTypeDC006  CalcType = "dc006"
	CalcTypeDC006A CalcType = "dc006a"
	CalcTypeDC0071 CalcType = "dc007_1"
	CalcTypeDC0072 CalcType = "dc007_2"
	CalcTypeDC008  CalcType = "dc008"
	CalcTypeDC010  CalcType = "dc010"
	CalcTypeDC011  CalcType = "dc011"
	CalcTypeDC012  CalcType = "dc012"
)

// AllCalcTypes lists every calculation sheet in presentation order.
var AllCalcTypes = []CalcType{
	CalcTypeValve,
	CalcTypeDC001, CalcTypeDC001A,
	CalcTypeDC002, CalcTypeDC002A,
	CalcTypeDC003, CalcTypeDC004,
	CalcTypeDC005, CalcTypeDC005A,
	CalcTypeDC006, CalcTypeDC006A,
	CalcTypeDC0071, CalcTypeDC0072,
	CalcTypeDC008, CalcTypeDC010, CalcTypeDC011, CalcTypeDC012,
}

func (t CalcType) String() string { return string(t) }

func (t CalcType) IsValid() bool {
	for _, ct := range AllCalcTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// DisplayName is the human-readable sheet name, also used as the default
// record name when the user saves without one.
func (t CalcType) DisplayName() string {
	switch t {
	case CalcTypeValve:
		return "Untitled"
	case CalcTypeDC0071:
		return "DC007-1"
	case CalcTypeDC0072:
		return "DC007-2"
	default:
		// dc001 -> DC001, dc001a -> DC001A
		s := string(t)
		out := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			out[i] = c
		}
		return string(out)
	}
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeValveDesign EntityType = "valve_design"
	EntityTypeCalcRecord  EntityType = "calc_record"
	EntityTypeUser        EntityType = "user"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeValveDesign, EntityTypeCalcRecord, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction represents the kind of event recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionLogin    AuditAction = "LOGIN"
	AuditActionRegister AuditAction = "REGISTER"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete,
		AuditActionLogin, AuditActionRegister:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleSuperadmin UserRole = "superadmin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleSuperadmin:
		return true
	}
	return false
}

func (r UserRole) IsSuperadmin() bool {
	return r == UserRoleSuperadmin
}
