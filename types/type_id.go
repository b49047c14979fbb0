package types

type TypeID int

// kinds a column value can take
const (
	Invalid TypeID = iota
	Integer
	Float
	Varchar
	Null
)

func (t TypeID) IsNumeric() bool {
	return t == Integer || t == Float
}

func (t TypeID) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Varchar:
		return "Varchar"
	case Null:
		return "Null"
	}
	return "Invalid"
}
