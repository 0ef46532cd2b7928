package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"artisanmarket/pkg/domain"
)

type filePart struct {
	field       string
	filename    string
	contentType string
}

func multipartBody(t *testing.T, fields map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("create part %s: %v", f.field, err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write part %s: %v", f.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func postMultipart(t *testing.T, url, token string, fields map[string]string, files []filePart) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, fields, files)
	req, _ := http.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("multipart request: %v", err)
	}
	return resp
}

func TestPortfolioEndToEnd(t *testing.T) {
	ts := newTestServer(t, Config{})
	artisan, token := signUp(t, ts.URL, "Meera", "meera@example.com", "artisan")

	// Profile with an image upload.
	resp := postMultipart(t, ts.URL+"/api/portfolio/profile", token,
		map[string]string{"name": "Meera Devi", "tagline": "Block printing", "location": "Jaipur"},
		[]filePart{{field: "profile_image", filename: "me.png", contentType: "image/png"}},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile upsert expected 200, got %d", resp.StatusCode)
	}
	var profile domain.ArtisanProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	resp.Body.Close()
	if !strings.HasPrefix(profile.ProfileImage, "/uploads/portfolio/profile/profile_image-") {
		t.Fatalf("profile image reference = %q", profile.ProfileImage)
	}

	// Work with two images.
	resp = postMultipart(t, ts.URL+"/api/portfolio/work", token,
		map[string]string{"title": "Indigo dupatta", "price_range": "2000-3000", "available_for_order": "true"},
		[]filePart{
			{field: "work_images", filename: "a.jpg", contentType: "image/jpeg"},
			{field: "work_images", filename: "b.webp", contentType: "image/webp"},
		},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("work upsert expected 200, got %d", resp.StatusCode)
	}
	var work domain.Work
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		t.Fatalf("decode work: %v", err)
	}
	resp.Body.Close()
	if work.ID == "" || len(work.ImageURLs) != 2 || !work.AvailableForOrder {
		t.Fatalf("unexpected work: %+v", work)
	}

	// Achievement with a single award image.
	resp = postMultipart(t, ts.URL+"/api/portfolio/achievement", token,
		map[string]string{"title": "National craft award", "year": "2021"},
		[]filePart{{field: "award_image", filename: "award.jpeg", contentType: "image/jpeg"}},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("achievement upsert expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Social links.
	links := []byte(`{"instagram":"https://instagram.com/meera","website":"https://meera.example"}`)
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/portfolio/social-links", bytes.NewReader(links))
	req.Header.Set("Authorization", "Bearer "+token)
	linkResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("social links request: %v", err)
	}
	linkResp.Body.Close()
	if linkResp.StatusCode != http.StatusOK {
		t.Fatalf("social links expected 200, got %d", linkResp.StatusCode)
	}

	// Public read returns the merged document.
	getResp, err := http.Get(ts.URL + "/api/portfolio/" + artisan.ID)
	if err != nil {
		t.Fatalf("portfolio get: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("portfolio get expected 200, got %d", getResp.StatusCode)
	}
	var doc domain.PortfolioDocument
	if err := json.NewDecoder(getResp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Name != "Meera Devi" || len(doc.Works) != 1 || len(doc.Achievements) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Instagram != "https://instagram.com/meera" {
		t.Fatalf("instagram = %q", doc.Instagram)
	}
}

func TestPortfolioGetUnknownArtisan(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/api/portfolio/nobody")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown artisan expected 404, got %d", resp.StatusCode)
	}
}

func TestPortfolioUploadRejectsUnsupportedType(t *testing.T) {
	ts := newTestServer(t, Config{})
	_, token := signUp(t, ts.URL, "Meera", "meera@example.com", "artisan")

	resp := postMultipart(t, ts.URL+"/api/portfolio/profile", token,
		map[string]string{"name": "Meera"},
		[]filePart{{field: "profile_image", filename: "malware.exe", contentType: "application/octet-stream"}},
	)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("exe upload expected 400, got %d", resp.StatusCode)
	}

	// Image extension with a non-image declared type is rejected too.
	resp = postMultipart(t, ts.URL+"/api/portfolio/profile", token,
		map[string]string{"name": "Meera"},
		[]filePart{{field: "profile_image", filename: "fake.png", contentType: "text/html"}},
	)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("spoofed upload expected 400, got %d", resp.StatusCode)
	}
}

func TestPortfolioDeleteScopedToOwner(t *testing.T) {
	ts := newTestServer(t, Config{})
	owner, ownerToken := signUp(t, ts.URL, "Meera", "meera@example.com", "artisan")
	_, intruderToken := signUp(t, ts.URL, "Ivan", "ivan@example.com", "artisan")

	resp := postMultipart(t, ts.URL+"/api/portfolio/profile", ownerToken, map[string]string{"name": "Meera"}, nil)
	resp.Body.Close()
	resp = postMultipart(t, ts.URL+"/api/portfolio/work", ownerToken, map[string]string{"title": "Keeper"}, nil)
	var work domain.Work
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		t.Fatalf("decode work: %v", err)
	}
	resp.Body.Close()

	// The intruder's delete reports success but must not remove the row.
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/portfolio/work/"+work.ID, nil)
	req.Header.Set("Authorization", "Bearer "+intruderToken)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("foreign delete: %v", err)
	}
	delResp.Body.Close()

	getResp, err := http.Get(ts.URL + "/api/portfolio/" + owner.ID)
	if err != nil {
		t.Fatalf("portfolio get: %v", err)
	}
	defer getResp.Body.Close()
	var doc domain.PortfolioDocument
	if err := json.NewDecoder(getResp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if len(doc.Works) != 1 {
		t.Fatalf("foreign delete removed the work")
	}

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/portfolio/work/"+work.ID, nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	delResp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("owner delete expected 200, got %d", delResp.StatusCode)
	}
}
