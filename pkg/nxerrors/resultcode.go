package nxerrors

import "errors"

// ResultCode is the stable numeric contract observable across process
// boundaries (§6): success and partial-success occupy 0/1, the general
// error space occupies 100..999, and minimizer-local failures occupy
// 1000..1099.
type ResultCode int

const (
	CodeSuccess ResultCode = 0
	CodePartial ResultCode = 1

	CodeInvalidParameter ResultCode = 100
	CodeNotInitialized   ResultCode = 101
	CodeOutOfMemory      ResultCode = 102
	CodeNotFound         ResultCode = 103
	CodeAlreadyExists    ResultCode = 104
	CodeInvalidOperation ResultCode = 105
	CodeUnsupported      ResultCode = 106
	CodeIoError          ResultCode = 107
	CodeDependencyError  ResultCode = 108
	CodeVersionConflict  ResultCode = 109
	CodeSymbolError      ResultCode = 110

	CodeMinimizerBase ResultCode = 1000
)

// AsResultCode classifies an error returned by a core component into the
// stable numeric contract, so the pipeline engine's error handler can
// report a code alongside a human message (§7 "Propagation").
func AsResultCode(err error) ResultCode {
	if err == nil {
		return CodeSuccess
	}

	var verr *VersionError
	if errors.As(err, &verr) {
		return CodeInvalidParameter
	}

	var serr *SymbolError
	if errors.As(err, &serr) {
		switch serr.Kind {
		case "not_found":
			return CodeNotFound
		case "already_present":
			return CodeAlreadyExists
		default:
			return CodeSymbolError
		}
	}

	var lerr *LoaderError
	if errors.As(err, &lerr) {
		switch lerr.Kind {
		case "symbol_not_found":
			return CodeNotFound
		default:
			return CodeIoError
		}
	}

	var struerr *StructuralError
	if errors.As(err, &struerr) {
		switch struerr.Kind {
		case "version_conflict":
			return CodeVersionConflict
		default:
			return CodeDependencyError
		}
	}

	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return CodeInvalidOperation
	}

	var merr *MinimizerError
	if errors.As(err, &merr) {
		return CodeMinimizerBase
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		return CodeInvalidParameter
	}

	var valerr *ValidationError
	if errors.As(err, &valerr) {
		return CodeInvalidParameter
	}

	return CodeInvalidOperation
}

// String renders a ResultCode using its contract name, for log lines.
func (c ResultCode) String() string {
	switch c {
	case CodeSuccess:
		return "Success"
	case CodePartial:
		return "PartialSuccess"
	case CodeInvalidParameter:
		return "InvalidParameter"
	case CodeNotInitialized:
		return "NotInitialized"
	case CodeOutOfMemory:
		return "OutOfMemory"
	case CodeNotFound:
		return "NotFound"
	case CodeAlreadyExists:
		return "AlreadyExists"
	case CodeInvalidOperation:
		return "InvalidOperation"
	case CodeUnsupported:
		return "Unsupported"
	case CodeIoError:
		return "IoError"
	case CodeDependencyError:
		return "DependencyError"
	case CodeVersionConflict:
		return "VersionConflict"
	case CodeSymbolError:
		return "SymbolError"
	}
	if c >= CodeMinimizerBase && c < CodeMinimizerBase+100 {
		return "MinimizerError"
	}
	return "Unknown"
}
