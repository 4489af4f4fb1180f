package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
)

// Document is one entry of the Q&A knowledge corpus.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Store holds the loaded corpus and answers retrieval queries over it. The
// corpus comes from an S3 bucket when one is configured, otherwise from a
// local directory of .md/.txt files.
type Store struct {
	mu   sync.RWMutex
	docs []Document
	cfg  config.RAGConfig
	s3   *s3.Client
}

func NewStore(cfg config.RAGConfig) *Store {
	store := &Store{cfg: cfg}

	if cfg.S3Bucket != "" {
		store.s3 = s3.New(s3.Options{
			Region: cfg.S3Region,
			Credentials: aws.NewCredentialsCache(
				awscredentials.NewStaticCredentialsProvider(cfg.AWSKey, cfg.AWSSecret, ""),
			),
		})
	}

	return store
}

// Reload replaces the in-memory corpus from the configured source.
func (s *Store) Reload(ctx context.Context) error {
	var (
		docs []Document
		err  error
	)

	if s.s3 != nil {
		docs, err = s.loadFromS3(ctx)
	} else {
		docs, err = s.loadFromDir()
	}
	if err != nil {
		logger.Error("RAGStore:Reload:Error", "error", err)
		return err
	}

	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()

	logger.Info("RAGStore:Reload:Done", "documents", len(docs))
	return nil
}

func (s *Store) loadFromDir() ([]Document, error) {
	entries, err := os.ReadDir(s.cfg.DocsDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("RAGStore:LoadFromDir:Missing", "dir", s.cfg.DocsDir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read docs dir: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !isCorpusFile(entry.Name()) {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.cfg.DocsDir, entry.Name()))
		if err != nil {
			logger.Warn("RAGStore:LoadFromDir:ReadError", "file", entry.Name(), "error", err)
			continue
		}

		docs = append(docs, newDocument(entry.Name(), string(raw)))
	}
	return docs, nil
}

func (s *Store) loadFromS3(ctx context.Context) ([]Document, error) {
	var docs []Document

	paginator := s3.NewListObjectsV2Paginator(s.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.S3Bucket),
		Prefix: aws.String(s.cfg.S3Prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list corpus bucket: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !isCorpusFile(key) {
				continue
			}

			out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(s.cfg.S3Bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				logger.Warn("RAGStore:LoadFromS3:GetObject:Error", "key", key, "error", err)
				continue
			}

			raw, err := io.ReadAll(out.Body)
			out.Body.Close()
			if err != nil {
				logger.Warn("RAGStore:LoadFromS3:Read:Error", "key", key, "error", err)
				continue
			}

			docs = append(docs, newDocument(filepath.Base(key), string(raw)))
		}
	}

	return docs, nil
}

func newDocument(name, text string) Document {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return Document{
		ID:    slug.Make(base),
		Title: base,
		Text:  text,
	}
}

func isCorpusFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".txt":
		return true
	}
	return false
}

// Retrieve returns up to k documents ranked by query-term overlap.
func (s *Store) Retrieve(query string, k int) []Document {
	s.mu.RLock()
	docs := s.docs
	s.mu.RUnlock()

	terms := tokenize(query)
	if len(terms) == 0 || len(docs) == 0 {
		return nil
	}

	type scored struct {
		doc   Document
		score int
	}

	var ranked []scored
	for _, doc := range docs {
		text := strings.ToLower(doc.Text + " " + doc.Title)
		score := 0
		for _, term := range terms {
			score += strings.Count(text, term)
		}
		if score > 0 {
			ranked = append(ranked, scored{doc: doc, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	result := make([]Document, len(ranked))
	for i, r := range ranked {
		result[i] = r.doc
	}
	return result
}

// Size reports how many documents are loaded.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// SetDocuments replaces the corpus directly. Tests only.
func (s *Store) SetDocuments(docs []Document) {
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	var terms []string
	for _, f := range fields {
		if len(f) > 2 {
			terms = append(terms, f)
		}
	}
	return terms
}
