// Binary convert-manpages converts man page Markdown files (NAME.SECTION.md)
// into roff.
//
//	go run ./docs --output-dir=out docs/readmestats.1.md
//	go run ./docs --preview docs/readmestats.1.md
package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"emperror.dev/errors"
	"github.com/aviator-co/readmestats/docs/internal/md2man"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var (
	preview   = pflag.Bool("preview", false, "Preview the converted man page")
	outputDir = pflag.String("output-dir", "", "Output directory")
	version   = pflag.String("version", "", "The manual version")

	manpageMarkdownPattern = regexp.MustCompile(`[.](\d)[.]md$`)
)

func main() {
	pflag.Parse()
	if *outputDir == "" {
		// If the output directory is not specified, assume it's for preview.
		*preview = true
	}
	if len(pflag.Args()) == 0 || (*preview && len(pflag.Args()) != 1) {
		pflag.Usage()
		os.Exit(1)
	}

	for _, fp := range pflag.Args() {
		roff, section, err := convert(fp)
		if err != nil {
			logrus.WithError(err).Fatal("cannot convert man page")
		}
		if *preview {
			if err := previewRoff(roff); err != nil {
				logrus.WithError(err).Fatal("cannot preview man page")
			}
			return
		}
		outFilePath := filepath.Join(
			*outputDir,
			"man"+strconv.Itoa(section),
			strings.TrimSuffix(filepath.Base(fp), ".md"),
		)
		if err := os.MkdirAll(filepath.Dir(outFilePath), 0o755); err != nil {
			logrus.WithError(err).Fatal("cannot create the output directory")
		}
		if err := os.WriteFile(outFilePath, roff, 0o644); err != nil {
			logrus.WithError(err).WithField("path", outFilePath).Fatal("cannot write the conversion result")
		}
		logrus.WithField("path", outFilePath).Info("wrote man page")
	}
}

func convert(fp string) ([]byte, int, error) {
	matches := manpageMarkdownPattern.FindStringSubmatch(fp)
	if len(matches) == 0 {
		return nil, 0, errors.Errorf("%s: cannot find a section number", fp)
	}
	section, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, 0, errors.WrapIff(err, "%s: invalid section", fp)
	}
	bs, err := os.ReadFile(fp)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return md2man.RenderToRoff(bs, section, *version, "readmestats", "readmestats Manual"), section, nil
}

func previewRoff(roff []byte) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin", "freebsd":
		cmd = exec.Command("mandoc", "-a")
	case "linux":
		cmd = exec.Command("man", "-l", "-")
	default:
		return errors.New("operating system not supported for preview")
	}
	cmd.Stdin = bytes.NewReader(roff)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
