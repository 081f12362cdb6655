// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tokenizer encodes normalized utterances into fixed-length BERT
// WordPiece token windows.
package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/decoder"
	"github.com/sugarme/tokenizer/model"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	"github.com/sugarme/tokenizer/util"
)

const (
	// DefaultMaxLength is the token window the model was trained with.
	DefaultMaxLength = 64

	ClsToken = "[CLS]"
	SepToken = "[SEP]"
	PadToken = "[PAD]"
	UnkToken = "[UNK]"

	// TokenizerFile is a Hugging Face fast-tokenizer definition.
	TokenizerFile = "tokenizer.json"
	// VocabFile is a WordPiece vocabulary, one token per line.
	VocabFile = "vocab.txt"
)

var (
	// ErrNoTokenizer is returned when a model directory has neither
	// tokenizer.json nor vocab.txt.
	ErrNoTokenizer = errors.New("no tokenizer.json or vocab.txt")
	// ErrEmptyEncoding is returned for a window too small to hold [CLS] and
	// [SEP].
	ErrEmptyEncoding = errors.New("empty token sequence")
)

// Encoding is one padded token window.
type Encoding struct {
	IDs           []int64
	AttentionMask []int64
	Tokens        []string
	// WordIDs aligns each token to a word of the input; -1 for special and
	// padding tokens. Continuation pieces share their head word's index.
	WordIDs []int
}

// Len is the number of non-padding tokens.
func (e *Encoding) Len() int {
	n := 0
	for _, m := range e.AttentionMask {
		if m == 1 {
			n++
		}
	}
	return n
}

// Tokenizer wraps a WordPiece tokenizer with fixed-length padding and
// truncation.
type Tokenizer struct {
	tk        *tokenizer.Tokenizer
	maxLength int
	clsID     int
	sepID     int
	padID     int
}

// Load builds the tokenizer stored in a model directory, preferring
// tokenizer.json over vocab.txt.
func Load(dir string, maxLength int) (*Tokenizer, error) {
	if p := filepath.Join(dir, TokenizerFile); fileExists(p) {
		tk, err := pretrained.FromFile(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", TokenizerFile, err)
		}
		return wrap(tk, maxLength)
	}

	if p := filepath.Join(dir, VocabFile); fileExists(p) {
		vocab, err := readVocab(p)
		if err != nil {
			return nil, err
		}
		return NewWordPiece(vocab, maxLength)
	}

	return nil, fmt.Errorf("%w in %s", ErrNoTokenizer, dir)
}

// HasTokenizer reports whether dir contains tokenizer files.
func HasTokenizer(dir string) bool {
	return fileExists(filepath.Join(dir, TokenizerFile)) || fileExists(filepath.Join(dir, VocabFile))
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func readVocab(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vocab: %w", err)
	}
	defer f.Close()

	var vocab []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		vocab = append(vocab, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vocab: %w", err)
	}
	return vocab, nil
}

// NewWordPiece creates an uncased BERT WordPiece tokenizer from a vocabulary
// whose ids are the line numbers.
func NewWordPiece(vocabLines []string, maxLength int) (*Tokenizer, error) {
	vocab := make(model.Vocab)
	for i, line := range vocabLines {
		if line != "" {
			vocab[line] = i
		}
	}

	opts := util.NewParams(map[string]any{
		"unk_token": UnkToken,
	})
	wp, err := wordpiece.New(vocab, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create wordpiece model: %w", err)
	}

	tk := tokenizer.NewTokenizer(wp)

	// clean text, lowercase, handle Chinese chars, strip accents
	tk.WithNormalizer(normalizer.NewBertNormalizer(true, true, true, true))
	tk.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())
	tk.AddSpecialTokens([]tokenizer.AddedToken{
		tokenizer.NewAddedToken(ClsToken, true),
		tokenizer.NewAddedToken(SepToken, true),
		tokenizer.NewAddedToken(PadToken, true),
	})
	tk.WithDecoder(decoder.DefaultWordpieceDecoder())

	return wrap(tk, maxLength)
}

func wrap(tk *tokenizer.Tokenizer, maxLength int) (*Tokenizer, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	t := &Tokenizer{tk: tk, maxLength: maxLength}

	var ok bool
	if t.clsID, ok = tk.TokenToId(ClsToken); !ok {
		return nil, fmt.Errorf("cannot find ID for %s token", ClsToken)
	}
	if t.sepID, ok = tk.TokenToId(SepToken); !ok {
		return nil, fmt.Errorf("cannot find ID for %s token", SepToken)
	}
	if t.padID, ok = tk.TokenToId(PadToken); !ok {
		return nil, fmt.Errorf("cannot find ID for %s token", PadToken)
	}
	return t, nil
}

// MaxLength is the fixed window size of every Encoding.
func (t *Tokenizer) MaxLength() int { return t.maxLength }

// Encode tokenizes text into [CLS] tokens... [SEP] [PAD]..., truncating the
// content to fit MaxLength.
func (t *Tokenizer) Encode(text string) (enc *Encoding, err error) {
	if t.maxLength < 2 {
		return nil, ErrEmptyEncoding
	}

	// sugarme/tokenizer panics on some inputs in BertNormalizer.TransformRange
	defer func() {
		if r := recover(); r != nil {
			enc, err = nil, fmt.Errorf("tokenizing %q: %v", text, r)
		}
	}()

	var ids []int
	var tokens []string
	var words []int
	if strings.TrimSpace(text) != "" {
		raw, err := t.tk.EncodeSingle(text, false)
		if err != nil {
			return nil, fmt.Errorf("tokenizing: %w", err)
		}
		ids, tokens, words = raw.Ids, raw.Tokens, raw.Words
	}

	content := min(len(ids), t.maxLength-2)
	enc = &Encoding{
		IDs:           make([]int64, 0, t.maxLength),
		AttentionMask: make([]int64, 0, t.maxLength),
		Tokens:        make([]string, 0, t.maxLength),
		WordIDs:       make([]int, 0, t.maxLength),
	}
	enc.add(int64(t.clsID), ClsToken, -1, 1)
	for i := 0; i < content; i++ {
		word := -1
		if i < len(words) {
			word = words[i]
		}
		enc.add(int64(ids[i]), tokens[i], word, 1)
	}
	enc.add(int64(t.sepID), SepToken, -1, 1)
	for len(enc.IDs) < t.maxLength {
		enc.add(int64(t.padID), PadToken, -1, 0)
	}
	return enc, nil
}

func (e *Encoding) add(id int64, token string, word int, mask int64) {
	e.IDs = append(e.IDs, id)
	e.Tokens = append(e.Tokens, token)
	e.WordIDs = append(e.WordIDs, word)
	e.AttentionMask = append(e.AttentionMask, mask)
}
