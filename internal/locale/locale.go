package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type CliFlags struct {
	Config       string `toml:"config"`
	Datasets     string `toml:"datasets"`
	OutputFormat string `toml:"output_format"`
	NoCache      string `toml:"no_cache"`
	Select       string `toml:"select"`
	Where        string `toml:"where"`
	Order        string `toml:"order"`
	Limit        string `toml:"limit"`
}

type CliCommands struct {
	Export string `toml:"export"`
	Fetch  string `toml:"fetch"`
	Check  string `toml:"check"`
}

type CliArgs struct {
	Export string `toml:"export"`
	Fetch  string `toml:"fetch"`
}

type CliSection struct {
	Description string      `toml:"description"`
	Flags       CliFlags    `toml:"flags"`
	Commands    CliCommands `toml:"commands"`
	Args        CliArgs     `toml:"args"`
}

type ErrorsSection struct {
	OutputFormatNotImpl string `toml:"output_format_not_implemented"`
	OutputFormatEmpty   string `toml:"output_format_empty"`
	UnknownDataset      string `toml:"unknown_dataset"`
	DatasetDisabled     string `toml:"dataset_disabled"`
	NoDatasetSelected   string `toml:"no_dataset_selected"`
	FetchFailed         string `toml:"fetch_failed"`
}

type LogsSection struct {
	CheckOK     string `toml:"check_ok"`
	CheckFailed string `toml:"check_failed"`
	NotResource string `toml:"not_resource"`
	Exported    string `toml:"exported"`
	Fetched     string `toml:"fetched"`
}

type Locale struct {
	CLI    CliSection    `toml:"cli"`
	Errors ErrorsSection `toml:"errors"`
	Logs   LogsSection   `toml:"logs"`
}

// L is the locale loaded by Load, for packages that only need the odd
// message and don't carry a *Locale around.
var L *Locale

func DetectSystemLocale() string {
	lang := os.Getenv("LANG")
	if lang == "" {
		return "en_US"
	}

	cleanLang := strings.Split(lang, ".")[0]

	return strings.ReplaceAll(cleanLang, "-", "_")
}

func Load(localeName string) (*Locale, error) {
	if localeName == "" || strings.ToLower(localeName) == "auto" {
		localeName = DetectSystemLocale()
	}

	localePath := filepath.Join("config", "locales", fmt.Sprintf("%s.toml", localeName))

	if _, err := os.Stat(localePath); os.IsNotExist(err) {
		localePath = filepath.Join("config", "locales", "en_US.toml")
	}

	var l Locale
	if _, err := toml.DecodeFile(localePath, &l); err != nil {
		return nil, fmt.Errorf("failed to load locale file %s: %w", localePath, err)
	}

	L = &l

	return &l, nil
}
