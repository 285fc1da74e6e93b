// Package zip bundles job artifacts into a single archive for delivery.
package zip

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ZipFiles archives the sources next to the first one and returns the
// archive path and size. Entries are stored flat under their base names.
func ZipFiles(sources []string) (string, int64, error) {
	if len(sources) == 0 {
		return "", 0, fmt.Errorf("no files to zip")
	}
	target := strings.TrimSuffix(sources[0], filepath.Ext(sources[0])) + ".zip"
	archive, err := os.Create(target)
	if err != nil {
		return target, 0, err
	}
	defer archive.Close()
	writer := zip.NewWriter(archive)
	for _, source := range sources {
		if err = addEntry(writer, source); err != nil {
			_ = writer.Close()
			return target, 0, err
		}
	}
	if err = writer.Close(); err != nil {
		return target, 0, err
	}
	info, err := archive.Stat()
	if err != nil {
		return target, 0, err
	}
	return target, info.Size(), nil
}

func addEntry(writer *zip.Writer, source string) error {
	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = info.Name()
	header.Method = zip.Deflate
	entry, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, file)
	return err
}
