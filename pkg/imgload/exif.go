package imgload

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	tagOrientation = 0x0112
	typeShort      = 3
)

var errNoEXIF = errors.New("no exif segment")

// tiffStartInJPEG scans the JPEG marker segments for an APP1 Exif block and
// returns the offset of its TIFF header.
func tiffStartInJPEG(data []byte) (int, error) {
	if len(data) < 4 {
		return -1, fmt.Errorf("data too short")
	}
	i := 2 // skip SOI
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, nil
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, errNoEXIF
}

// orientationFromTIFF reads the Orientation tag from IFD0 of the TIFF
// structure starting at tiffStart.
func orientationFromTIFF(data []byte, tiffStart int) (int, error) {
	if tiffStart < 0 || tiffStart+8 > len(data) {
		return 0, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch string(data[tiffStart : tiffStart+2]) {
	case "MM":
		order = binary.BigEndian
	case "II":
		order = binary.LittleEndian
	default:
		return 0, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(data[tiffStart+2:tiffStart+4]) != 0x002A {
		return 0, fmt.Errorf("invalid tiff magic")
	}
	ifd := tiffStart + int(order.Uint32(data[tiffStart+4:tiffStart+8]))
	if ifd+2 > len(data) || ifd < tiffStart {
		return 0, fmt.Errorf("ifd truncated")
	}
	n := int(order.Uint16(data[ifd : ifd+2]))
	for e := 0; e < n; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(data) {
			break
		}
		if order.Uint16(data[ent:ent+2]) != tagOrientation {
			continue
		}
		if order.Uint16(data[ent+2:ent+4]) != typeShort {
			return 0, fmt.Errorf("orientation has unexpected type")
		}
		return int(order.Uint16(data[ent+8 : ent+10])), nil
	}
	return 0, fmt.Errorf("orientation tag not found")
}

// Orientation returns the EXIF orientation (1..8) of an encoded JPEG or
// TIFF image, or 1 when it has none.
func Orientation(data []byte) int {
	var start int
	switch DetectFormat(data) {
	case FormatJPEG:
		s, err := tiffStartInJPEG(data)
		if err != nil {
			return 1
		}
		start = s
	case FormatTIFF:
		start = 0
	default:
		return 1
	}
	o, err := orientationFromTIFF(data, start)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}
