// Package vml writes assembled word streams in the .vml text format: the
// word count on the first line, then one decimal word per line.
package vml

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"vmasm/pkg/asm"
)

const (
	SourceExt = ".asm"
	OutputExt = ".vml"
)

// OutputPath derives the output file name: a trailing .asm is replaced by
// .vml, any other name simply gets .vml appended.
func OutputPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, SourceExt) + OutputExt
}

func Write(w io.Writer, words []asm.Word) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(len(words)))
	bw.WriteByte('\n')
	for _, word := range words {
		bw.WriteString(strconv.FormatInt(int64(word), 10))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile creates (or truncates) path and writes words to it.
func WriteFile(path string, words []asm.Word) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := Write(f, words); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	glog.V(1).Infof("wrote %d words to %s", len(words), path)
	return nil
}
