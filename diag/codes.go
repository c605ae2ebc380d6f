package diag

// Code is a stable diagnostic identifier. Errors start with E, warnings
// with W.
type Code string

const (
	E0004 Code = "E0004" // already declared
	E0005 Code = "E0005" // duplicated global assembler
	E0006 Code = "E0006" // non-constant value
	E0007 Code = "E0007" // reference without an address
	E0008 Code = "E0008" // value without an address
	E0017 Code = "E0017" // loop control flow outside of a loop
	E0018 Code = "E0018" // function terminator outside of a function
	E0019 Code = "E0019" // type error
	E0020 Code = "E0020" // mismatched types
	E0021 Code = "E0021" // mismatched modifiers
	E0022 Code = "E0022" // missing call arguments
	E0023 Code = "E0023" // mismatched call arguments
	E0026 Code = "E0026" // too many fields
	E0027 Code = "E0027" // missing fields
	E0028 Code = "E0028" // unknown reference
	E0030 Code = "E0030" // incompatible operation
	E0032 Code = "E0032" // incompatible type cast
	E0036 Code = "E0036" // too many parameters

	W0005 Code = "W0005" // local not used
	W0007 Code = "W0007" // lli not used
	W0008 Code = "W0008" // parameter not used
	W0009 Code = "W0009" // static not used
	W0010 Code = "W0010" // constant not used
	W0011 Code = "W0011" // assembler function not used
	W0012 Code = "W0012" // enum not used
	W0013 Code = "W0013" // enum field not used
	W0014 Code = "W0014" // intrinsic not used
	W0015 Code = "W0015" // structure not used
	W0016 Code = "W0016" // structure field not used
	W0017 Code = "W0017" // function not used
	W0018 Code = "W0018" // mutable never mutated
)

var titles = map[Code]string{
	E0004: "ALREADY DEFINED",
	E0005: "DUPLICATED GLOBAL ASSEMBLER",
	E0006: "NON-CONSTANT VALUE",
	E0007: "REFERENCE WITHOUT ADDRESS",
	E0008: "VALUE WITHOUT ADDRESS",
	E0017: "LOOP CONTROL FLOW OUTSIDE OF A LOOP",
	E0018: "TERMINATOR OUTSIDE OF A FUNCTION",
	E0019: "TYPE ERROR",
	E0020: "MISMATCHED TYPES",
	E0021: "MISMATCHED MODIFIERS",
	E0022: "MISSING CALL ARGUMENTS",
	E0023: "MISMATCHED CALL ARGUMENTS",
	E0026: "TOO MANY FIELDS",
	E0027: "MISSING FIELDS",
	E0028: "UNKNOWN REFERENCE",
	E0030: "INCOMPATIBLE OPERATION",
	E0032: "INCOMPATIBLE TYPE CAST",
	E0036: "TOO MANY PARAMETERS",

	W0005: "LOCAL NOT USED",
	W0007: "LOW LEVEL INSTRUCTION NOT USED",
	W0008: "PARAMETER NOT USED",
	W0009: "STATIC NOT USED",
	W0010: "CONSTANT NOT USED",
	W0011: "ASSEMBLER FUNCTION NOT USED",
	W0012: "ENUM NOT USED",
	W0013: "ENUM FIELD NOT USED",
	W0014: "INTRINSIC NOT USED",
	W0015: "STRUCTURE NOT USED",
	W0016: "STRUCTURE FIELD NOT USED",
	W0017: "FUNCTION NOT USED",
	W0018: "MUTABLE NEVER MUTATED",
}

// Title returns the banner title for the code, or the code itself when it
// has none.
func (c Code) Title() string {
	if t, ok := titles[c]; ok {
		return t
	}
	return string(c)
}

func (c Code) IsWarning() bool {
	return len(c) > 0 && c[0] == 'W'
}
