//Package dbfdiag renders Header, FieldDescriptor and any DeletableRecord as
//"Key : value " diagnostic strings, one field per key, in declaration order.
//The format matches the original implementation's formatter specializations
//so existing log-scraping tooling keeps working.
package dbfdiag

import (
	"fmt"
	"strings"

	"github.com/dbfdrive/godbf/schema"
)

//Header renders h as "Version : 3 Year : 124 Month : 7 Day : 31 ...".
func Header(h *schema.Header) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version : %d ", uint8(h.Version))
	fmt.Fprintf(&b, "Year : %d ", uint8(h.Year))
	fmt.Fprintf(&b, "Month : %d ", uint8(h.Month))
	fmt.Fprintf(&b, "Day : %d ", uint8(h.Day))
	fmt.Fprintf(&b, "RecordNumber : %d ", h.RecordNumber)
	fmt.Fprintf(&b, "HeaderBytes : %d ", h.HeaderBytes)
	fmt.Fprintf(&b, "RecordBytes : %d ", h.RecordBytes)
	fmt.Fprintf(&b, "ReservedBytes1 : %d ", h.Reserved1)
	fmt.Fprintf(&b, "IncompleteOperations : %d ", uint8(h.IncompleteOps))
	fmt.Fprintf(&b, "DbaseIvPasswordMarking : %d ", uint8(h.PasswordMark))
	fmt.Fprintf(&b, "MultiUserProcessing : %s ", h.MultiUserProcessing)
	fmt.Fprintf(&b, "MdxTag : %d ", uint8(h.MdxTag))
	fmt.Fprintf(&b, "DriverID : %d ", uint8(h.DriverID))
	fmt.Fprintf(&b, "ReservedBytes2 : %d ", h.Reserved2)
	return b.String()
}

//Field renders f as "Name : NAME FiledType : N ...". The key is spelled
//"FiledType", matching the source's own typo.
func Field(f *schema.FieldDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name : %s ", f.Name)
	fmt.Fprintf(&b, "FiledType : %s ", f.FieldType)
	fmt.Fprintf(&b, "ReservedBytes1 : %d ", f.Reserved1)
	fmt.Fprintf(&b, "TotalLen : %d ", f.TotalLen)
	fmt.Fprintf(&b, "PrecisionLen : %d ", f.PrecisionLen)
	fmt.Fprintf(&b, "ReservedBytes2 : %d ", f.Reserved2)
	fmt.Fprintf(&b, "WorkspaceID : %d ", uint8(f.WorkspaceID))
	fmt.Fprintf(&b, "ReservedBytes3 : %s ", f.Reserved3)
	fmt.Fprintf(&b, "MdxTag : %d ", uint8(f.MdxTag))
	return b.String()
}

//Record renders any DeletableRecord as "RecordDelete : false ReadPos : 97 ".
func Record(rec schema.DeletableRecord) string {
	return fmt.Sprintf("RecordDelete : %t ReadPos : %d ", rec.Deleted(), rec.ReadPos())
}
