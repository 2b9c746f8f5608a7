// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binder

import (
	"reflect"
	"strings"
)

// Key identifies a binding by type and an optional classifier.
type Key[T any] struct {
	classifier string
	classified bool
}

// KeyOf returns the unclassified key for T.
func KeyOf[T any]() Key[T] {
	return Key[T]{}
}

// Classified returns a key for T narrowed by classifier.
// An empty classifier is the same as no classifier.
func Classified[T any](classifier string) Key[T] {
	if classifier == "" {
		return Key[T]{}
	}

	return Key[T]{classifier: classifier, classified: true}
}

// Type returns the raw type of the key.
func (k Key[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Classifier returns the classifier and whether the key has one.
func (k Key[T]) Classifier() (string, bool) {
	return k.classifier, k.classified
}

// Test reports whether a binding stored under k satisfies a lookup for other.
// An unclassified key satisfies any lookup; a classified key only satisfies a
// lookup carrying the identical classifier.
func (k Key[T]) Test(other Key[T]) bool {
	if !k.classified {
		return true
	}

	return other.classified && other.classifier == k.classifier
}

// Compare orders keys by specificity: classified keys sort before unclassified ones,
// classified keys among themselves by classifier.
func (k Key[T]) Compare(other Key[T]) int {
	return compareSpecificity(k.classified, k.classifier, other.classified, other.classifier)
}

// String implements fmt.Stringer.
func (k Key[T]) String() string {
	var sb strings.Builder

	sb.WriteString(k.Type().String())

	if k.classified {
		sb.WriteString("@")
		sb.WriteString(k.classifier)
	}

	return sb.String()
}

func compareSpecificity(aClassified bool, a string, bClassified bool, b string) int {
	switch {
	case aClassified && !bClassified:
		return -1
	case !aClassified && bClassified:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
