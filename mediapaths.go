package inspect2pdf

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-inspect2pdf/internal/fileutil"
)

// withAbsoluteMedia returns a copy of rec whose relative file references
// are joined to sourceDir, so one cache shared by records from different
// directories never confuses two "photo.jpg". URLs, data URIs, file://
// URLs and absolute paths are kept. rec itself is not modified; when
// nothing needs rewriting rec is returned as is.
func withAbsoluteMedia(rec *InspectionRecord, sourceDir string) (*InspectionRecord, error) {
	if sourceDir == "" || rec == nil {
		return rec, nil
	}
	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}

	var out *InspectionRecord
	for i, s := range rec.Sections {
		for j, m := range s.Media {
			url, changed := absolutePath(m.URL, absDir)
			thumb, thumbChanged := absolutePath(m.Thumbnail, absDir)
			if !changed && !thumbChanged {
				continue
			}
			if out == nil {
				out = cloneRecord(rec)
			}
			out.Sections[i].Media[j].URL = url
			out.Sections[i].Media[j].Thumbnail = thumb
		}
	}
	if out == nil {
		return rec, nil
	}
	return out, nil
}

// absolutePath reports whether ref is a relative local path and, if so,
// returns it joined to dir.
func absolutePath(ref, dir string) (string, bool) {
	if ref == "" || fileutil.IsURL(ref) || fileutil.IsDataURI(ref) ||
		strings.HasPrefix(strings.ToLower(ref), "file://") || filepath.IsAbs(ref) {
		return ref, false
	}
	return filepath.Join(dir, ref), true
}

func cloneRecord(rec *InspectionRecord) *InspectionRecord {
	out := &InspectionRecord{Header: rec.Header, Sections: make([]Section, len(rec.Sections))}
	for i, s := range rec.Sections {
		s.Media = append([]MediaReference(nil), s.Media...)
		out.Sections[i] = s
	}
	return out
}
