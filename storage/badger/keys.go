package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/edquery/matnews/core"
)

// Key prefixes for different data types. Every key embeds the MAT id so a
// prefix scan can never cross a MAT boundary.
const (
	documentPrefix        = "nldoc"
	documentDatePrefix    = "nldocd"
	documentVersionPrefix = "nldocv"
	sourcePagePrefix      = "srcpg"
)

// makeDocumentKey generates the primary key for a document.
func makeDocumentKey(matID string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", documentPrefix, matID, id))
}

// makeDocumentDateKey generates a composite key for the recency index.
// Format: prefix:mat:fetchedAt:id
func makeDocumentDateKey(matID string, fetchedAt time.Time, id core.ID) []byte {
	prefix := makeDocumentDatePrefix(matID)
	totalSize := len(prefix) + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(fetchedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeDocumentDatePrefix generates the scan prefix for the recency index.
func makeDocumentDatePrefix(matID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentDatePrefix, matID))
}

// makeDocumentVersionKey generates a composite key for the version index of
// a source URL. Format: prefix:mat:urlID:fetchedAt:id
func makeDocumentVersionKey(matID, sourceURL string, fetchedAt time.Time, id core.ID) []byte {
	prefix := makeDocumentVersionPrefix(matID, sourceURL)
	totalSize := len(prefix) + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fetchedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeDocumentVersionPrefix generates the scan prefix for all versions of a
// source URL. The URL is folded to a fixed-width hash so it cannot collide
// with the key separators.
func makeDocumentVersionPrefix(matID, sourceURL string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d:", documentVersionPrefix, matID, core.IDFromContent(sourceURL)))
}

// makeSourcePageKey generates the key for a source page, unique per
// (MAT, URL). The MAT id is folded to a fixed-width hash because source
// page scans have no primary-key re-read to filter out a neighbouring MAT
// whose id happens to extend this one past a separator.
func makeSourcePageKey(matID, url string) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d", sourcePagePrefix, core.IDFromContent(matID), core.IDFromContent(url)))
}

// makeSourcePagePrefix generates the scan prefix for all source pages of a MAT.
func makeSourcePagePrefix(matID string) []byte {
	return []byte(fmt.Sprintf("%s:%d:", sourcePagePrefix, core.IDFromContent(matID)))
}
