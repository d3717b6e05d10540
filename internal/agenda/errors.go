package agenda

import "errors"

// RootElement is the expected name of the document's root element.
const RootElement = "agenda"

// DefaultStorageKey is the store key the document is persisted under.
const DefaultStorageKey = "agenda_xml_v1"

// DefaultExportName is the file name suggested for exported documents.
const DefaultExportName = "contacts.xml"

// Error variables for agenda operations.
var (
	ErrParse              = errors.New("invalid agenda document")
	ErrUnexpectedRoot     = errors.New("root element is not <" + RootElement + ">")
	ErrContactNotFound    = errors.New("contact not found")
	ErrIDRequired         = errors.New("contact ID is required")
	ErrDuplicateID        = errors.New("duplicate contact ID")
	ErrInvalidValue       = errors.New("value cannot be stored in the document")
	ErrIDGenerationFailed = errors.New("no unique id after repeated attempts")
	ErrUnknownField       = errors.New("unknown field")
	ErrFormClosed         = errors.New("form is already closed")
	ErrDeleteInAddMode    = errors.New("cannot delete a contact that was never saved")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
)
