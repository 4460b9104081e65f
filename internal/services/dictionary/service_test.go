package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wordsiege/wordsiege-go/internal/storage/memory"
	"github.com/wordsiege/wordsiege-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) writeWordFile(content string) string {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ServiceSuite) TestNotLoadedInitially() {
	s.False(s.service.IsLoaded())
	s.False(s.service.IsValidWord("cat"))
}

func (s *ServiceSuite) TestLoadWordsAndValidate() {
	s.Require().NoError(s.service.LoadWords([]string{"cat", "castle"}))

	s.True(s.service.IsLoaded())
	s.True(s.service.IsValidWord("cat"))
	s.True(s.service.IsValidWord("CASTLE"))
	s.False(s.service.IsValidWord("dog"))
}

func (s *ServiceSuite) TestLoadFromFileSkipsSingleLetters() {
	path := s.writeWordFile("cat\na\ndog\n\n  castle  \n")

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	s.Equal(3, s.service.WordCount())
	s.True(s.service.IsValidWord("castle"))
	s.False(s.service.IsValidWord("a"))
}

func (s *ServiceSuite) TestLoadFromFilePersistsToStorage() {
	path := s.writeWordFile("cat\ndog\n")
	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"cat", "dog"}, words)
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"hit", "win"}))

	s.Require().NoError(s.service.LoadFromStorage(s.ctx))
	s.True(s.service.IsValidWord("hit"))
}

func (s *ServiceSuite) TestLoadWithFallbackOnMissingFile() {
	s.service.LoadWithFallback(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))

	s.True(s.service.IsLoaded())
	s.True(s.service.IsValidWord("castle"))
	s.Equal(len(FallbackWords), s.service.WordCount())
}

func (s *ServiceSuite) TestTooShortNeverValid() {
	s.Require().NoError(s.service.LoadWords([]string{"a", "i"}))
	s.False(s.service.IsValidWord("a"))
	s.False(s.service.IsValidWord(""))
}
