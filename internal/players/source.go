package players

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

const maxPlayersDocSize = 16 << 20 // 16 MB

// SourceInterface loads the joined player+stats list the external players
// collaborator produces. The GraphQL join itself happens outside this
// service; only its output document is consumed here.
type SourceInterface interface {
	Load() ([]models.Player, error)
}

type playersDoc struct {
	Players []models.Player `json:"players"`
}

func decodePlayers(data []byte) ([]models.Player, error) {
	// Accept both the enveloped form {"players": [...]} and a bare array.
	var doc playersDoc
	if err := json.Unmarshal(data, &doc); err == nil && doc.Players != nil {
		return doc.Players, nil
	}
	var list []models.Player
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unable to decode players document: %w", err)
	}
	return list, nil
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load() ([]models.Player, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return decodePlayers(data)
}

type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Load() ([]models.Player, error) {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("players fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPlayersDocSize))
	if err != nil {
		return nil, err
	}
	return decodePlayers(data)
}

// NewSource builds the configured source.
func NewSource(conf *structures.Config) (SourceInterface, error) {
	switch conf.Players.Source {
	case "file":
		if conf.Players.FilePath == "" {
			return nil, fmt.Errorf("players.filePath is required for the file source")
		}
		return NewFileSource(conf.Players.FilePath), nil
	case "http":
		if conf.Players.Url == "" {
			return nil, fmt.Errorf("players.url is required for the http source")
		}
		return NewHTTPSource(conf.Players.Url, conf.Players.FetchTimeout*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown players source %q", conf.Players.Source)
	}
}
