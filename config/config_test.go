/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package config

import (
	"testing"
)

func TestVerifyAppliesDefaults(t *testing.T) {
	ec := &EngineConfig{Locales: []string{"en"}}
	if err := ec.Verify(); err != nil {
		t.Fatal(err)
	}
	if ec.Log_Level != defaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", defaultLogLevel, ec.Log_Level)
	}
	if ec.Relative_Match_Len != defaultRelativeLen {
		t.Fatalf("expected default relative match len %v, got %v", defaultRelativeLen, ec.Relative_Match_Len)
	}
	if ec.Max_Stack_Depth != defaultMaxStackSize {
		t.Fatalf("expected default max stack depth %d, got %d", defaultMaxStackSize, ec.Max_Stack_Depth)
	}
	if d, err := ec.ParseTimeout(); err != nil || d != defaultTimeout {
		t.Fatalf("expected default timeout %v, got %v (err %v)", defaultTimeout, d, err)
	}
}

func TestVerifyRejectsBadLogLevel(t *testing.T) {
	ec := &EngineConfig{Locales: []string{"en"}, Log_Level: "VERBOSE"}
	if err := ec.Verify(); err != ErrInvalidLogLevel {
		t.Fatalf("expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestVerifyRejectsOutOfRangeRelativeMatchLen(t *testing.T) {
	ec := &EngineConfig{Locales: []string{"en"}, Relative_Match_Len: 1.5}
	if err := ec.Verify(); err != ErrInvalidRelativeMatchLen {
		t.Fatalf("expected ErrInvalidRelativeMatchLen, got %v", err)
	}
}

func TestVerifyRejectsNoLocales(t *testing.T) {
	ec := &EngineConfig{}
	if err := ec.Verify(); err != ErrNoLocalesEnabled {
		t.Fatalf("expected ErrNoLocalesEnabled, got %v", err)
	}
}

func TestVerifyRejectsUnparseableTimeout(t *testing.T) {
	ec := &EngineConfig{Locales: []string{"en"}, Timeout: "not-a-duration"}
	if err := ec.Verify(); err == nil {
		t.Fatal("expected an error for an unparseable timeout")
	}
}
