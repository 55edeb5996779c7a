package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentPathServiceDocumentKey(t *testing.T) {
	svc := NewDocumentPathService("CCF")

	key, err := svc.DocumentKey("1012250042", "", "Photo", "0170001")
	require.NoError(t, err)
	require.Equal(t, "2025/CCF/adm-reg-docs/Photo/P0170001.jpg", key)

	key, err = svc.DocumentKey("1012250042", "BCOM", "Aadhaar Card", "0170002")
	require.NoError(t, err)
	require.Equal(t, "2025/BCOM/adm-reg-docs/Aadhaar/AD0170002.jpg", key)

	// Unknown documents land in the generic bucket.
	key, err = svc.DocumentKey("1012250042", "", "Caste Certificate", "0170003")
	require.NoError(t, err)
	require.Equal(t, "2025/CCF/adm-reg-docs/Others/DOC0170003.jpg", key)
}

func TestDocumentPathServiceDeterministic(t *testing.T) {
	svc := NewDocumentPathService("")
	first, err := svc.DocumentKey("1012250042", "", "Signature", "0170009")
	require.NoError(t, err)
	second, err := svc.DocumentKey("1012250042", "", "Signature", "0170009")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDocumentPathServiceFormKey(t *testing.T) {
	svc := NewDocumentPathService("CCF")
	key, err := svc.FormKey("1012250042", "", "0170001")
	require.NoError(t, err)
	require.Equal(t, "2025/CCF/students/1012250042/adm-reg-forms/0170001.pdf", key)
}

func TestDocumentPathServiceBadUID(t *testing.T) {
	svc := NewDocumentPathService("CCF")
	_, err := svc.AdmissionYear("10122")
	require.Error(t, err)
	_, err = svc.AdmissionYear("1012xy0042")
	require.Error(t, err)
}

func TestDocumentPathServiceCodes(t *testing.T) {
	svc := NewDocumentPathService("CCF")
	require.Equal(t, "M", svc.CodeForDocument("Class XII Marksheet"))
	require.Equal(t, "ABC", svc.CodeForDocument("APAAR ID Card"))
	require.Equal(t, "DOC", svc.CodeForDocument("Unknown"))
	require.Equal(t, "ParentPhotoId", svc.SubfolderForCode("FP"))
	require.Equal(t, "ParentPhotoId", svc.SubfolderForCode("MP"))
	require.Equal(t, "Others", svc.SubfolderForCode("ZZ"))
}
