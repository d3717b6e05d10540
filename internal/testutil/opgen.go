package testutil

import (
	"strconv"

	"github.com/calvinalkan/agenda/internal/agenda"
)

// OpGenConfig configures the operation generator. Rates are percentages and
// should add up to 100; whatever remains goes to reopen.
type OpGenConfig struct {
	AddRate           int
	UpdateRate        int
	UpsertUnknownRate int
	DeleteRate        int
	DeleteMissingRate int
	SearchRate        int
	ImportRate        int
	GarbageRate       int
}

// DefaultOpGenConfig returns a balanced configuration.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{
		AddRate:           25,
		UpdateRate:        20,
		UpsertUnknownRate: 5,
		DeleteRate:        15,
		DeleteMissingRate: 5,
		SearchRate:        15,
		ImportRate:        7,
		GarbageRate:       3,
	}
}

// Text length limits for generated field values.
const (
	maxNameLen   = 10
	maxPhoneLen  = 6
	maxEmailLen  = 8
	maxOtherLen  = 8
	maxQueryLen  = 3
	maxGarbage   = 8
	maxImportLen = 4
)

// samplePicture is a tiny PNG data URL used for generated pictures.
const samplePicture = "data:image/png;base64,iVBORw0KGgo="

// OpGenerator generates deterministic operations from a byte stream.
type OpGenerator struct {
	stream *ByteStream
	config OpGenConfig
	model  *Model
}

// NewOpGenerator creates a new operation generator. model is consulted for
// existing IDs, so it must be the model the operations are applied to.
func NewOpGenerator(fuzzBytes []byte, model *Model, cfg *OpGenConfig) *OpGenerator {
	return &OpGenerator{
		stream: NewByteStream(fuzzBytes),
		config: *cfg,
		model:  model,
	}
}

// HasMore reports whether more operations can be generated.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// NextOp generates the next operation.
func (g *OpGenerator) NextOp() Op {
	ids := g.model.IDs()

	choice := int(g.stream.NextByte()) % 100

	cumulative := 0

	cumulative += g.config.AddRate
	if choice < cumulative {
		return &OpAdd{Fields: g.genFields()}
	}

	cumulative += g.config.UpdateRate
	if choice < cumulative {
		if len(ids) == 0 {
			return g.genUpsertUnknown()
		}

		id := ids[g.stream.NextInt(len(ids))]

		return &OpUpdate{ID: id, Fields: g.genFields()}
	}

	cumulative += g.config.UpsertUnknownRate
	if choice < cumulative {
		return g.genUpsertUnknown()
	}

	cumulative += g.config.DeleteRate
	if choice < cumulative {
		if len(ids) == 0 {
			return g.genDeleteMissing()
		}

		return &OpDelete{ID: ids[g.stream.NextInt(len(ids))]}
	}

	cumulative += g.config.DeleteMissingRate
	if choice < cumulative {
		return g.genDeleteMissing()
	}

	cumulative += g.config.SearchRate
	if choice < cumulative {
		return &OpSearch{Query: g.stream.NextText(maxQueryLen)}
	}

	cumulative += g.config.ImportRate
	if choice < cumulative {
		return g.genImport()
	}

	cumulative += g.config.GarbageRate
	if choice < cumulative {
		return &OpImportGarbage{Data: g.stream.NextText(maxGarbage) + "<"}
	}

	return &OpReopen{}
}

// genFields draws every field in a fixed order: name, phone, email, then
// address, picture, birthdate and sex, each guarded by a presence byte.
func (g *OpGenerator) genFields() agenda.Fields {
	fields := agenda.Fields{
		Name:  g.stream.NextText(maxNameLen),
		Phone: g.stream.NextText(maxPhoneLen),
		Email: g.stream.NextText(maxEmailLen),
	}

	if g.stream.NextBool() {
		fields.Address = g.stream.NextText(maxOtherLen)
	}

	if g.stream.NextBool() {
		fields.Picture = samplePicture
	}

	if g.stream.NextBool() {
		fields.Birthdate = g.stream.NextText(maxOtherLen)
	}

	if g.stream.NextBool() {
		fields.Sex = g.stream.NextText(1)
	}

	return fields
}

// Unknown and missing IDs use prefixes no generator or import ever produces.
func (g *OpGenerator) genUpsertUnknown() Op {
	return &OpUpsertUnknown{ID: "u" + strconv.Itoa(g.stream.NextInt(100)), Fields: g.genFields()}
}

func (g *OpGenerator) genDeleteMissing() Op {
	return &OpDelete{ID: "missing-" + strconv.Itoa(g.stream.NextInt(100))}
}

func (g *OpGenerator) genImport() Op {
	n := g.stream.NextInt(maxImportLen + 1)

	contacts := make([]agenda.Contact, 0, n)
	for i := range n {
		contacts = append(contacts, agenda.Contact{ID: "i" + strconv.Itoa(i), Fields: g.genFields()})
	}

	op := &OpImport{Contacts: contacts}
	op.ForeignRoot = g.stream.NextInt(4) == 0
	op.Allow = g.stream.NextBool()

	return op
}
