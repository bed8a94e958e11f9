// Copyright 2025 The WordSift Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command compiledict converts a frequency ordered word list into the msgpack
// snapshot format read by wordsift, then reads the snapshot back to check
// that both hold the same words in the same order.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/charmbracelet/log"
)

func main() {
	in := flag.String("in", "", "Word list, one word per line, most common first")
	out := flag.String("out", "data/words.msgpack", "Snapshot file to write")
	limit := flag.Int("limit", dictionary.MaxCutoff, "Maximum words to keep (0 for all)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Infof("Reading word list %s", *in)
	dict, err := dictionary.LoadText(*in, *limit)
	if err != nil {
		log.Fatalf("Failed to read word list: %v", err)
	}

	log.Infof("Writing %d words to %s", dict.Len(), *out)
	if err := writeSnapshot(dict, *out); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}

	written, err := dictionary.LoadSnapshot(*out, 0)
	if err != nil {
		log.Fatalf("Failed to read back snapshot: %v", err)
	}
	if err := sameWords(dict.Words(), written.Words()); err != nil {
		log.Fatalf("Snapshot does not match source: %v", err)
	}
	log.Info("Snapshot verified")
}

func writeSnapshot(dict *dictionary.Dictionary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dict.WriteSnapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sameWords(a, b []string) error {
	if len(a) != len(b) {
		return fmt.Errorf("different length: %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("different word at rank %d: %q and %q", i, a[i], b[i])
		}
	}
	return nil
}
