package cmd

import "errors"

// errSettingsMissing is returned when a command runs without resolved settings.
var errSettingsMissing = errors.New("configuration was not resolved")
