package cli

import (
	"errors"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/agenda/internal/agenda"
)

var errPictureFlagConflict = errors.New("--picture, --picture-file and --clear-picture are mutually exclusive")

// fieldFlags registers one flag per contact field plus the picture helpers.
type fieldFlags struct {
	flags        *flag.FlagSet
	values       map[agenda.Field]*string
	pictureFile  *string
	clearPicture *bool
}

func addFieldFlags(flags *flag.FlagSet) *fieldFlags {
	ff := &fieldFlags{flags: flags, values: make(map[agenda.Field]*string, len(agenda.AllFields))}

	for _, field := range agenda.AllFields {
		usage := "Set the " + field.String()
		if field == agenda.FieldPicture {
			usage = "Set the raw picture payload (usually a data URL)"
		}

		ff.values[field] = flags.String(field.String(), "", usage)
	}

	ff.pictureFile = flags.String("picture-file", "", "Read the picture from an image `file`")
	ff.clearPicture = flags.Bool("clear-picture", false, "Remove the picture")

	return ff
}

// changed reports whether any field flag was given.
func (ff *fieldFlags) changed() bool {
	for _, field := range agenda.AllFields {
		if ff.flags.Changed(field.String()) {
			return true
		}
	}

	return ff.flags.Changed("picture-file") || ff.flags.Changed("clear-picture")
}

// apply copies the given flags onto form. Relative picture paths resolve
// against a.cfg.EffectiveCwd.
func (ff *fieldFlags) apply(a *app, form *agenda.Form) error {
	pictureFlags := 0

	for _, name := range []string{agenda.FieldPicture.String(), "picture-file", "clear-picture"} {
		if ff.flags.Changed(name) {
			pictureFlags++
		}
	}

	if pictureFlags > 1 {
		return errPictureFlagConflict
	}

	for _, field := range agenda.AllFields {
		if !ff.flags.Changed(field.String()) {
			continue
		}

		err := form.Set(field, *ff.values[field])
		if err != nil {
			return err
		}
	}

	if ff.flags.Changed("picture-file") {
		payload, err := a.loadPicture(*ff.pictureFile)
		if err != nil {
			return err
		}

		err = form.SetPicture(payload)
		if err != nil {
			return err
		}
	}

	if *ff.clearPicture {
		return form.ClearPicture()
	}

	return nil
}

func (a *app) loadPicture(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.EffectiveCwd, path)
	}

	return loadPicture(a.fs, path, a.cfg.MaxPictureBytes)
}
