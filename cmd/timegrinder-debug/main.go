/*************************************************************************
 * Copyright 2024 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Command timegrinder-debug runs search's absolute-timestamp fast path
// (package timegrinder) directly against its command-line arguments,
// printing what each one extracted to -- the tool to reach for when a
// string that looks like it should hit the fast path doesn't, before
// suspecting the rule corpus instead.
package main

import (
	"flag"
	"fmt"
	"log"
	"regexp"

	// Embed tzdata so that we don't rely on potentially broken timezone DBs on the host
	_ "time/tzdata"

	"github.com/comtravo/ctparse/timegrinder"
)

var (
	cName   = flag.String("custom-format-name", "", "Name for a custom format")
	cRegex  = flag.String("custom-format-regex", "", "Extraction regular expression for custom format")
	cFormat = flag.String("custom-format", "", "Parse format for custom format")
)

func main() {
	var custActive bool
	var cust timegrinder.CustomFormat
	flag.Parse()
	if *cFormat != `` {
		if *cRegex == `` {
			log.Fatalf("missing custom-format-regex for %s", *cFormat)
		} else if *cName == `` {
			log.Fatalf("missing custom-format-name for %s", *cFormat)
		} else if _, err := regexp.Compile(*cRegex); err != nil {
			log.Fatalf("Failed to parse regex %q %v", *cRegex, err)
		}
		custActive = true
		cust = timegrinder.CustomFormat{
			Name:   *cName,
			Regex:  *cRegex,
			Format: *cFormat,
		}
	}

	cfg := timegrinder.Config{
		EnableLeftMostSeed: true,
	}
	tg, err := timegrinder.New(cfg)
	if err != nil {
		log.Fatal("failed to create new timegrinder: ", err)
	}
	if custActive {
		p, err := timegrinder.NewCustomProcessor(cust)
		if err != nil {
			log.Fatal("failed to create custom processor ", cust.Name, ": ", err)
		}
		if _, err := tg.AddProcessor(p); err != nil {
			log.Fatal("failed to add custom processor ", cust.Name, ": ", err)
		}
	}

	if len(flag.Args()) == 0 {
		log.Fatal("no values to test")
	}
	for _, arg := range flag.Args() {
		ts, offset, err := tg.DebugExtract([]byte(arg))
		if err != nil {
			fmt.Printf("extraction error %q - %v\n", arg, err)
		} else if offset < 0 {
			fmt.Printf("failed to extract on %q\n", arg)
		} else {
			fmt.Printf("%q - %d -> %v\n", arg, offset, ts)
		}
	}
}
