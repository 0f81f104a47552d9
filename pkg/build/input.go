package build

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Publication is one record from the publication source.
type Publication struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Year      string   `json:"year"`
	Venue     string   `json:"venue,omitempty"`
	Citations int      `json:"citations,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	Source    string   `json:"source,omitempty"`
}

// StaticPaper is one record from the static-paper source. These carry no
// author metadata and no native ID; the builder assigns synthetic
// "static-<index>" IDs in input order.
type StaticPaper struct {
	Title    string `json:"title"`
	Date     string `json:"date"` // "<month>.<year>"
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
	Links    []Link `json:"links,omitempty"`
}

// Link is a named URL attached to a static paper. A link literally named
// "Paper" supplies the node's PDF URL.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// paperLinkName is the link name that identifies the PDF of a static paper.
const paperLinkName = "Paper"

// year extracts the 4-digit year from the "<month>.<year>" date field.
// Dates without a dot separator fail safe to the given fallback year rather
// than propagating a junk value downstream.
func (p StaticPaper) year(fallback int) string {
	if i := strings.LastIndex(p.Date, "."); i >= 0 && i+1 < len(p.Date) {
		return p.Date[i+1:]
	}
	return fmt.Sprintf("%d", fallback)
}

// pdfURL returns the URL of the first link named "Paper", or "" if none.
func (p StaticPaper) pdfURL() string {
	for _, l := range p.Links {
		if l.Name == paperLinkName {
			return l.URL
		}
	}
	return ""
}

// ReadPublications decodes a JSON array of publication records from r.
func ReadPublications(r io.Reader) ([]Publication, error) {
	var pubs []Publication
	if err := json.NewDecoder(r).Decode(&pubs); err != nil {
		return nil, fmt.Errorf("decode publications: %w", err)
	}
	return pubs, nil
}

// ReadPublicationsFile reads publication records from a JSON file at path.
func ReadPublicationsFile(path string) ([]Publication, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPublications(f)
}

// ReadPapers decodes a JSON array of static-paper records from r.
func ReadPapers(r io.Reader) ([]StaticPaper, error) {
	var papers []StaticPaper
	if err := json.NewDecoder(r).Decode(&papers); err != nil {
		return nil, fmt.Errorf("decode papers: %w", err)
	}
	return papers, nil
}

// ReadPapersFile reads static-paper records from a JSON file at path.
func ReadPapersFile(path string) ([]StaticPaper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPapers(f)
}
