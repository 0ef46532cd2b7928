package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"artisanmarket/pkg/domain"
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// /api/portfolio/profile
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.parseUploadForm(w, r) {
		return
	}
	profileImage, err := s.saveUpload(r, "profile_image", "portfolio/profile")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	coverImage, err := s.saveUpload(r, "cover_image", "portfolio/profile")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	profile, err := s.app.UpsertProfile(user.ID, domain.ArtisanProfile{
		Name:           r.FormValue("name"),
		ProfileImage:   profileImage,
		CoverImage:     coverImage,
		Tagline:        r.FormValue("tagline"),
		Location:       r.FormValue("location"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		About:          r.FormValue("about"),
		Experience:     r.FormValue("experience"),
		Specialization: r.FormValue("specialization"),
		Language:       r.FormValue("language"),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// /api/portfolio/work
func (s *Server) handleUpsertWork(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.parseUploadForm(w, r) {
		return
	}
	imageURLs, err := s.saveUploads(r, "work_images", "portfolio/works", 10)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	work, err := s.app.UpsertWork(user.ID, domain.Work{
		ID:                r.FormValue("work_id"),
		Title:             r.FormValue("title"),
		Category:          r.FormValue("category"),
		Description:       r.FormValue("description"),
		ImageURLs:         imageURLs,
		PriceRange:        r.FormValue("price_range"),
		CreationDate:      r.FormValue("creation_date"),
		AvailableForOrder: parseBool(r.FormValue("available_for_order")),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, work)
}

// /api/portfolio/achievement
func (s *Server) handleUpsertAchievement(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.parseUploadForm(w, r) {
		return
	}
	awardImage, err := s.saveUpload(r, "award_image", "portfolio/achievements")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
	achievement, err := s.app.UpsertAchievement(user.ID, domain.Achievement{
		ID:          r.FormValue("achievement_id"),
		Title:       r.FormValue("title"),
		Year:        year,
		Description: r.FormValue("description"),
		AwardImage:  awardImage,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievement)
}

type socialLinksRequest struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Youtube   string `json:"youtube"`
	Website   string `json:"website"`
}

// /api/portfolio/social-links
func (s *Server) handleUpsertSocialLinks(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req socialLinksRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	links, err := s.app.UpsertSocialLinks(user.ID, domain.SocialLinks{
		Instagram: req.Instagram,
		Facebook:  req.Facebook,
		Youtube:   req.Youtube,
		Website:   req.Website,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// /api/portfolio/{artisanId}
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	artisanID := strings.TrimPrefix(r.URL.Path, "/api/portfolio/")
	if artisanID == "" || strings.Contains(artisanID, "/") {
		http.NotFound(w, r)
		return
	}
	doc, err := s.app.GetPortfolio(artisanID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// /api/portfolio/work/{workId}
func (s *Server) handleDeleteWork(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/portfolio/work/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if err := s.app.DeleteWork(id, user.ID); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// /api/portfolio/achievement/{achievementId}
func (s *Server) handleDeleteAchievement(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/portfolio/achievement/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if err := s.app.DeleteAchievement(id, user.ID); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// upload helpers

func (s *Server) parseUploadForm(w http.ResponseWriter, r *http.Request) bool {
	if s.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return false
	}
	return true
}

// saveUpload stores one optional file field and returns its reference, or ""
// when the field is absent.
func (s *Server) saveUpload(r *http.Request, field, kind string) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: invalid upload", field)
	}
	defer file.Close()
	return s.storeFile(r, file, header, field, kind)
}

// saveUploads stores up to max files from one multi-file field.
func (s *Server) saveUploads(r *http.Request, field, kind string, max int) ([]string, error) {
	urls := []string{}
	if r.MultipartForm == nil {
		return urls, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > max {
		return nil, fmt.Errorf("at most %d %s files are allowed", max, field)
	}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("read %s: invalid upload", field)
		}
		url, err := s.storeFile(r, file, header, field, kind)
		file.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *Server) storeFile(r *http.Request, file multipart.File, header *multipart.FileHeader, field, kind string) (string, error) {
	if !s.isExtensionAllowed(header.Filename) {
		return "", fmt.Errorf("unsupported file type for %s", field)
	}
	contentType := header.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]; !ok {
		return "", fmt.Errorf("unsupported file type for %s", field)
	}
	blobs := s.app.Blobs()
	if blobs == nil {
		return "", fmt.Errorf("file uploads are not configured")
	}
	key := storageKey(kind, field, header.Filename)
	url, err := blobs.Save(r.Context(), key, file, header.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("store %s: upload failed", field)
	}
	return url, nil
}

func storageKey(kind, field, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s-%d-%d%s", kind, field, time.Now().UnixNano(), rand.Int63n(1_000_000_000), ext)
}

func parseBool(raw string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return b
}
