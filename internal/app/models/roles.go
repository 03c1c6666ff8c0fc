package models

// RoleType is the closed set of roles a profile can hold.
type RoleType string

const (
	RolePrincipalInstructor RoleType = "PRINCIPAL_INSTRUCTOR"
	RoleStudent             RoleType = "STUDENT"
	RoleGuardian            RoleType = "GUARDIAN"
)

// Valid reports whether the role is a member of the closed enumeration.
// Adding a role means extending this switch and every caller that matches on it.
func (r RoleType) Valid() bool {
	switch r {
	case RolePrincipalInstructor, RoleStudent, RoleGuardian:
		return true
	}
	return false
}

// BeltColor is the closed palette of belt ranks, coarse ordering from
// white up to black.
type BeltColor string

const (
	BeltWhite  BeltColor = "white"
	BeltGrey   BeltColor = "grey"
	BeltYellow BeltColor = "yellow"
	BeltOrange BeltColor = "orange"
	BeltGreen  BeltColor = "green"
	BeltBlue   BeltColor = "blue"
	BeltPurple BeltColor = "purple"
	BeltBrown  BeltColor = "brown"
	BeltBlack  BeltColor = "black"
)

var beltOrder = []BeltColor{
	BeltWhite, BeltGrey, BeltYellow, BeltOrange, BeltGreen,
	BeltBlue, BeltPurple, BeltBrown, BeltBlack,
}

// Valid reports whether the color belongs to the palette.
func (b BeltColor) Valid() bool {
	for _, c := range beltOrder {
		if b == c {
			return true
		}
	}
	return false
}

// AllBeltColors returns the palette in rank order.
func AllBeltColors() []BeltColor {
	out := make([]BeltColor, len(beltOrder))
	copy(out, beltOrder)
	return out
}
