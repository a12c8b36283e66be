package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestValidateMimeTypePNG(t *testing.T) {
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

	mimeType, err := ValidateMimeType(bytes.NewReader(png), []string{MimeImage, MimePDF})
	if err != nil {
		t.Fatalf("png rejected: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("mimeType = %s, want image/png", mimeType)
	}
}

func TestValidateMimeTypePDF(t *testing.T) {
	pdf := []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

	mimeType, err := ValidateMimeType(bytes.NewReader(pdf), []string{MimeImage, MimePDF})
	if err != nil {
		t.Fatalf("pdf rejected: %v", err)
	}
	if mimeType != MimePDF {
		t.Errorf("mimeType = %s, want %s", mimeType, MimePDF)
	}
}

func TestValidateMimeTypeVideoPrefix(t *testing.T) {
	// 最小的 mp4 文件头：box 长度 24，major brand mp42
	mp4 := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42mp41")...)
	mp4 = append(mp4, make([]byte, 64)...)

	mimeType, err := ValidateMimeType(bytes.NewReader(mp4), []string{MimeVideo})
	if err != nil {
		t.Fatalf("mp4 rejected: %v", err)
	}
	if !strings.HasPrefix(mimeType, MimeVideo) {
		t.Errorf("mimeType = %s, want %s prefix", mimeType, MimeVideo)
	}
}

// 按内容嗅探，扩展名伪装成图片的脚本仍会被拒
func TestValidateMimeTypeRejectsText(t *testing.T) {
	mimeType, err := ValidateMimeType(strings.NewReader("#!/bin/sh\nexit 0\n"), []string{MimeImage, MimePDF})
	if err == nil {
		t.Fatalf("script accepted as %s", mimeType)
	}
}

func TestValidateMimeTypeEmptyReader(t *testing.T) {
	if mimeType, err := ValidateMimeType(strings.NewReader(""), []string{MimeImage}); err == nil {
		t.Fatalf("empty file accepted as %s", mimeType)
	}
}
