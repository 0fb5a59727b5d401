package extractors

import (
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// mimeKinds maps sniffed MIME types to file kinds.
var mimeKinds = map[string]domain.FileKind{
	"application/pdf":    domain.FileKindPDF,
	"application/msword": domain.FileKindDOC,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": domain.FileKindDOCX,
}

// Detect determines the kind of the file at path.
// Content sniffing wins when it is conclusive; containers such as zip or
// OLE, unreadable files and unsupported types fall back to the extension.
func Detect(path string) domain.FileKind {
	if mtype, err := mimetype.DetectFile(path); err == nil {
		if kind := kindFromMIME(mtype); kind != domain.FileKindUnknown {
			return kind
		}
	}
	return KindFromExtension(path)
}

// kindFromMIME walks the MIME hierarchy so that any text/plain descendant
// is treated as text.
func kindFromMIME(mtype *mimetype.MIME) domain.FileKind {
	for m := mtype; m != nil; m = m.Parent() {
		if kind, ok := mimeKinds[m.String()]; ok {
			return kind
		}
		if m.Is("text/plain") {
			return domain.FileKindTXT
		}
	}
	return domain.FileKindUnknown
}

// KindFromExtension maps a file extension to a kind.
func KindFromExtension(path string) domain.FileKind {
	return domain.ParseFileKind(filepath.Ext(path))
}
