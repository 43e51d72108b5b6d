// Package upload validates admin photo uploads before anything touches disk.
// The filename extension is attacker-controlled, so the file's leading bytes
// are sniffed as well; only files passing every check are written, under a
// random name unrelated to the original.
package upload

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// MaxBytes caps uploads at 2 MiB.
const MaxBytes = 2 << 20

var (
	ErrTransport   = errors.New("the upload did not complete, please try again")
	ErrTooLarge    = errors.New("file exceeds the 2 MB limit")
	ErrBadExt      = errors.New("only JPG and PNG images are allowed")
	ErrBadContent  = errors.New("invalid image type detected")
	ErrWriteFailed = errors.New("could not save the uploaded file")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SavePhoto validates the uploaded file and writes it under destDir with a
// generated name. It returns the path relative to the upload root, i.e.
// filepath.Base(destDir) + "/" + name. Every rejection path leaves no file
// behind: the content is held in memory until all checks pass and the write
// itself goes through a temp file and rename.
func SavePhoto(file multipart.File, header *multipart.FileHeader, destDir string) (string, error) {
	if file == nil || header == nil {
		return "", ErrTransport
	}
	if header.Size > MaxBytes {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		return "", ErrBadExt
	}

	// Read one byte past the cap so a lying Size header cannot sneak an
	// oversized body through.
	data, err := io.ReadAll(io.LimitReader(file, MaxBytes+1))
	if err != nil {
		return "", ErrTransport
	}
	if len(data) > MaxBytes {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", ErrTransport
	}

	if !allowedTypes[http.DetectContentType(data)] {
		return "", ErrBadContent
	}

	name, err := randomName(ext)
	if err != nil {
		return "", ErrWriteFailed
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", ErrWriteFailed
	}
	if err := renameio.WriteFile(filepath.Join(destDir, name), data, 0o644); err != nil {
		return "", ErrWriteFailed
	}

	return filepath.Base(destDir) + "/" + name, nil
}

// Remove deletes a previously stored file given its root-relative path, as
// recorded in a database row. Paths that escape the root are refused; a file
// already gone is not an error.
func Remove(root, relPath string) error {
	if strings.TrimSpace(relPath) == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("refusing path outside upload root: %q", relPath)
	}
	err := os.Remove(filepath.Join(root, clean))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func randomName(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}
