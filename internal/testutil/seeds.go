package testutil

import (
	"slices"
)

// Seed bundles a human-readable name with seed bytes.
//
// Curated seeds are hand-crafted to exercise scenarios that random fuzzing
// might take a long time to reach. Each one produces a deterministic
// sequence of operations when fed to OpGenerator with DefaultOpGenConfig.
type Seed struct {
	Name string
	Data []byte
}

// CuratedSeeds returns all curated seeds with descriptive names.
func CuratedSeeds() []Seed {
	return []Seed{
		{Name: "add_update_delete", Data: newSeedBuilder().
			add("ada").update(1, "adda").search("dd").delete(0).search("").Bytes()},
		{Name: "delete_everything", Data: newSeedBuilder().
			delete(0).deleteMissing(3).update(0, "eXY").search("ex").reopen().Bytes()},
		{Name: "import_then_edit", Data: newSeedBuilder().
			importContacts(3, false, false).update(2, "zeY").add("bab").reopen().search("a").Bytes()},
		{Name: "foreign_root", Data: newSeedBuilder().
			importContacts(2, true, false).importContacts(2, true, true).add("cy").reopen().Bytes()},
		{Name: "garbage_import", Data: newSeedBuilder().
			add("dee").garbage("<a>").garbage("").reopen().search("dee").Bytes()},
		{Name: "case_insensitive", Data: newSeedBuilder().
			add("XYZ").add("xyz").search("xY").search("Zx").Bytes()},
		{Name: "markup_values", Data: newSeedBuilder().
			add("<&>").add("a\"b'c").add("\t\n\r").reopen().search("&").Bytes()},
		{Name: "unstorable_values", Data: newSeedBuilder().
			add("a\x01b").update(0, "\x01").add("ab").reopen().Bytes()},
		{Name: "upsert_unknown", Data: newSeedBuilder().
			upsertUnknown(7, "abc").upsertUnknown(7, "abcd").reopen().Bytes()},
	}
}

// seedBuilder encodes operations as the bytes OpGenerator decodes them from
// under DefaultOpGenConfig. Generated contacts carry only a name.
type seedBuilder struct {
	cfg   OpGenConfig
	bytes []byte
}

func newSeedBuilder() *seedBuilder {
	return &seedBuilder{cfg: DefaultOpGenConfig()}
}

// Bytes returns the encoded seed.
func (b *seedBuilder) Bytes() []byte {
	return slices.Clone(b.bytes)
}

// choice emits the first byte of the range for the op at position idx in
// the rate order.
func (b *seedBuilder) choice(idx int) *seedBuilder {
	rates := []int{
		b.cfg.AddRate, b.cfg.UpdateRate, b.cfg.UpsertUnknownRate, b.cfg.DeleteRate,
		b.cfg.DeleteMissingRate, b.cfg.SearchRate, b.cfg.ImportRate, b.cfg.GarbageRate,
	}

	start := 0
	for _, r := range rates[:idx] {
		start += r
	}

	b.bytes = append(b.bytes, byte(start))

	return b
}

// text encodes s rune by rune; every rune must be a textAlphabet token.
func (b *seedBuilder) text(s string) *seedBuilder {
	runes := []rune(s)
	b.bytes = append(b.bytes, byte(len(runes)))

	for _, r := range runes {
		b.bytes = append(b.bytes, byte(slices.Index(textAlphabet, string(r))))
	}

	return b
}

// fields encodes a name with empty phone and email and no optional fields.
func (b *seedBuilder) fields(name string) *seedBuilder {
	b.text(name).text("").text("")
	b.bytes = append(b.bytes, 0, 0, 0, 0)

	return b
}

func (b *seedBuilder) add(name string) *seedBuilder {
	return b.choice(0).fields(name)
}

// update targets the contact at index idx in the model.
func (b *seedBuilder) update(idx int, name string) *seedBuilder {
	b.choice(1)
	b.bytes = append(b.bytes, byte(idx))

	return b.fields(name)
}

func (b *seedBuilder) upsertUnknown(n int, name string) *seedBuilder {
	b.choice(2)
	b.bytes = append(b.bytes, byte(n))

	return b.fields(name)
}

func (b *seedBuilder) delete(idx int) *seedBuilder {
	b.choice(3)
	b.bytes = append(b.bytes, byte(idx))

	return b
}

func (b *seedBuilder) deleteMissing(n int) *seedBuilder {
	b.choice(4)
	b.bytes = append(b.bytes, byte(n))

	return b
}

func (b *seedBuilder) search(query string) *seedBuilder {
	return b.choice(5).text(query)
}

func (b *seedBuilder) importContacts(n int, foreign, allow bool) *seedBuilder {
	b.choice(6)
	b.bytes = append(b.bytes, byte(n))

	for i := range n {
		b.fields(string(rune('a' + i)))
	}

	var foreignByte, allowByte byte = 1, 0
	if foreign {
		foreignByte = 0
	}

	if allow {
		allowByte = 1
	}

	b.bytes = append(b.bytes, foreignByte, allowByte)

	return b
}

func (b *seedBuilder) garbage(prefix string) *seedBuilder {
	return b.choice(7).text(prefix)
}

func (b *seedBuilder) reopen() *seedBuilder {
	b.bytes = append(b.bytes, 99)

	return b
}
