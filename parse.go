package qhack

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theapemachine/errnie"
)

// TermDelimiter separates the terms of a Hamiltonian in text form.
const TermDelimiter = "S"

type parseConfig struct {
	lenient bool
}

// ParseOption configures ParseHamiltonian.
type ParseOption func(*parseConfig)

/*
WithLenient skips Pauli tokens with an unknown letter, or an identity
with a wire index, instead of failing. It also reads any sign other than
"-" as positive.
*/
func WithLenient() ParseOption {
	return func(c *parseConfig) {
		c.lenient = true
	}
}

/*
ParseHamiltonian reads a Hamiltonian from its text form, for example
"+ 0.5 Z0 Z1 S- 1.25 X0 S+ 2.0 I".

Terms are separated by "S". Each term is a sign, a magnitude and one or
more Pauli tokens, all separated by whitespace. A Pauli token is a letter
from IXYZ followed by a wire index; a bare "I" is the identity on wire 0.
Terms keep their input order.
*/
func ParseHamiltonian(input string, opts ...ParseOption) (*Hamiltonian, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	segments := strings.Split(input, TermDelimiter)
	coeffs := make([]float64, 0, len(segments))
	terms := make([]PauliWord, 0, len(segments))

	for i, segment := range segments {
		coeff, word, err := parseTerm(segment, cfg)
		if err != nil {
			return nil, fmt.Errorf("term %d %q: %w", i, strings.TrimSpace(segment), err)
		}
		coeffs = append(coeffs, coeff)
		terms = append(terms, word)
	}

	return NewHamiltonian(coeffs, terms)
}

func parseTerm(segment string, cfg *parseConfig) (float64, PauliWord, error) {
	tokens := strings.Fields(segment)
	if len(tokens) < 2 {
		return 0, nil, fmt.Errorf("%w: want sign and magnitude, got %d tokens", ErrMalformedTerm, len(tokens))
	}

	sign, value := tokens[0], tokens[1]

	coeff, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("magnitude: %w", err)
	}

	switch {
	case sign == "-":
		coeff = -coeff
	case sign == "+" || cfg.lenient:
	default:
		return 0, nil, fmt.Errorf("%w: %q", ErrInvalidSign, sign)
	}

	word, err := ParsePauliWord(tokens[2:], cfg.lenient)
	if err != nil {
		return 0, nil, err
	}
	return coeff, word, nil
}

/*
ParsePauliWord turns Pauli tokens into a tensor product. With lenient set,
tokens with an unknown letter are logged and dropped, and so is an
identity with a wire index: only a bare "I" names the identity there.
*/
func ParsePauliWord(tokens []string, lenient bool) (PauliWord, error) {
	word := make(PauliWord, 0, len(tokens))

	for _, token := range tokens {
		if lenient && len(token) > 1 && Pauli(token[0]) == Identity {
			errnie.Info("Invalid input. skipping pauli token %q", token)
			continue
		}

		op, err := ParsePauliToken(token)
		if err != nil {
			if lenient && errors.Is(err, ErrInvalidPauli) {
				errnie.Info("Invalid input. skipping pauli token %q", token)
				continue
			}
			return nil, err
		}
		word = append(word, op)
	}

	if len(word) == 0 {
		return nil, ErrEmptyTerm
	}
	return word, nil
}

func ParsePauliToken(token string) (PauliOp, error) {
	if token == string(Identity) {
		return PauliOp{Pauli: Identity, Wire: 0}, nil
	}
	if token == "" {
		return PauliOp{}, fmt.Errorf("%w: empty token", ErrInvalidPauli)
	}

	pauli := Pauli(token[0])
	if !pauli.Valid() {
		return PauliOp{}, fmt.Errorf("%w: %q", ErrInvalidPauli, token)
	}

	wire, err := strconv.Atoi(token[1:])
	if err != nil {
		return PauliOp{}, fmt.Errorf("wire index of %q: %w", token, err)
	}
	if wire < 0 {
		return PauliOp{}, fmt.Errorf("%w: %q", ErrWireOutOfRange, token)
	}

	return PauliOp{Pauli: pauli, Wire: wire}, nil
}
