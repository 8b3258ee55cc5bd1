package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Семантические
	SemaInfo                    Code = 3000
	SemaError                   Code = 3001
	SemaDuplicateDeclaration    Code = 3002
	SemaUndeclaredIdentifier    Code = 3003
	SemaUndeclaredFunction      Code = 3004
	SemaTypeMismatch            Code = 3005
	SemaIncompatibleOperands    Code = 3006
	SemaUnsupportedOperation    Code = 3007
	SemaArityMismatch           Code = 3008
	SemaResultTypeMismatch      Code = 3009
	SemaHeterogeneousCollection Code = 3010
	SemaUnknownType             Code = 3011
	SemaBreakOutsideLoop        Code = 3012
	SemaReturnOutsideFunction   Code = 3013

	// I/O
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002
	IOWriteError    Code = 4003

	// Проектные
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Оптимизатор
	OptInfo           Code = 7000
	OptDivisionByZero Code = 7001
	OptDeadBranch     Code = 7002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaDuplicateDeclaration:    "Duplicate declaration",
		SemaUndeclaredIdentifier:    "Undeclared identifier",
		SemaUndeclaredFunction:      "Undeclared function",
		SemaTypeMismatch:            "Type mismatch",
		SemaIncompatibleOperands:    "Incompatible operands",
		SemaUnsupportedOperation:    "Unsupported operation",
		SemaArityMismatch:           "Arity mismatch",
		SemaResultTypeMismatch:      "Result type mismatch",
		SemaHeterogeneousCollection: "Heterogeneous collection",
		SemaUnknownType:             "Unknown type",
		SemaBreakOutsideLoop:        "break outside of loop",
		SemaReturnOutsideFunction:   "return outside of function",
		IOLoadFileError:             "I/O load file error",
		IODecodeError:               "Malformed AST document",
		IOWriteError:                "I/O write error",
		ProjInfo:                    "Project information",
		ProjInvalidManifest:         "Invalid mum.toml",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
		OptInfo:                     "Optimizer information",
		OptDivisionByZero:           "Constant division by zero",
		OptDeadBranch:               "Branch is never taken",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OPT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
