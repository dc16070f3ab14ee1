// cborcat decodes a CBOR-encoded hex string and prints an indented tree of
// its structure.
//
// Usage:
//
//	cborcat [-plutus] [-profile cml|canonical|plutus|struct] <hex-or-@file>
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/plutus"
)

func main() {
	var (
		plutusMode  bool
		profileName string
	)

	flag.BoolVar(&plutusMode, "plutus", false, "decode as Plutus Data instead of a generic CBOR value")
	flag.StringVar(&profileName, "profile", "cml", "decode profile: cml|canonical|plutus|struct")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <hex-or-@file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Decode a CBOR hex string and print it as an indented tree.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s a100191388\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -plutus -profile plutus @tx.hex\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: a hex string or @file argument is required")
		flag.Usage()
		os.Exit(1)
	}

	opts, err := profileOptions(profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := readHexArg(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	if plutusMode {
		d, err := plutus.Decode(data, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding Plutus Data: %v\n", err)
			os.Exit(1)
		}
		printPlutusData(os.Stdout, d, 0)
		return
	}

	v, err := cbor.Decode(data, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding CBOR: %v\n", err)
		os.Exit(1)
	}
	printValue(os.Stdout, v, 0)
}

func profileOptions(name string) (cbor.Options, error) {
	switch name {
	case "cml":
		return cbor.CmlDefaultOptions(), nil
	case "canonical":
		return cbor.CanonicalOptions(), nil
	case "plutus":
		return cbor.PlutusDataDefaultOptions(), nil
	case "struct":
		return cbor.DefaultOptions(cbor.ProfileStructFriendly), nil
	default:
		return cbor.Options{}, fmt.Errorf("unknown profile %q (want cml|canonical|plutus|struct)", name)
	}
}

func readHexArg(arg string) ([]byte, error) {
	var text string
	if strings.HasPrefix(arg, "@") {
		raw, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, err
		}
		text = string(raw)
	} else {
		text = arg
	}
	text = strings.TrimSpace(text)
	return hex.DecodeString(text)
}

func indent(w *os.File, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func printValue(w *os.File, v cbor.Value, depth int) {
	switch v.Kind() {
	case cbor.MajorUint, cbor.MajorNint:
		indent(w, depth)
		fmt.Fprintf(w, "%s\n", v.AsBigInt().String())
	case cbor.MajorBytes:
		indent(w, depth)
		fmt.Fprintf(w, "h'%s'\n", hex.EncodeToString(v.AsBytes()))
	case cbor.MajorText:
		indent(w, depth)
		fmt.Fprintf(w, "%q\n", v.AsText())
	case cbor.MajorArray:
		indent(w, depth)
		fmt.Fprintf(w, "[\n")
		for _, item := range v.AsArray() {
			printValue(w, item, depth+1)
		}
		indent(w, depth)
		fmt.Fprintf(w, "]\n")
	case cbor.MajorMap:
		indent(w, depth)
		fmt.Fprintf(w, "{\n")
		for _, p := range v.AsMap() {
			indent(w, depth+1)
			fmt.Fprintf(w, "key:\n")
			printValue(w, p.Key, depth+2)
			indent(w, depth+1)
			fmt.Fprintf(w, "value:\n")
			printValue(w, p.Value, depth+2)
		}
		indent(w, depth)
		fmt.Fprintf(w, "}\n")
	case cbor.MajorTag:
		indent(w, depth)
		fmt.Fprintf(w, "tag(%d)\n", v.TagNumber())
		printValue(w, v.TagInner(), depth+1)
	case cbor.MajorSimpleFloat:
		indent(w, depth)
		if v.IsFloat() {
			fmt.Fprintf(w, "%v\n", v.AsFloat())
		} else {
			fmt.Fprintf(w, "simple(%d)\n", v.AsSimple())
		}
	}
}

func printPlutusData(w *os.File, d plutus.Data, depth int) {
	switch d.Kind() {
	case plutus.KindConstr:
		index, fields := d.AsConstr()
		indent(w, depth)
		fmt.Fprintf(w, "Constr(%d) [\n", index)
		for _, f := range fields {
			printPlutusData(w, f, depth+1)
		}
		indent(w, depth)
		fmt.Fprintf(w, "]\n")
	case plutus.KindMap:
		indent(w, depth)
		fmt.Fprintf(w, "Map {\n")
		for _, e := range d.AsMap() {
			indent(w, depth+1)
			fmt.Fprintf(w, "key:\n")
			printPlutusData(w, e.Key, depth+2)
			indent(w, depth+1)
			fmt.Fprintf(w, "value:\n")
			printPlutusData(w, e.Value, depth+2)
		}
		indent(w, depth)
		fmt.Fprintf(w, "}\n")
	case plutus.KindList:
		indent(w, depth)
		fmt.Fprintf(w, "List [\n")
		for _, item := range d.AsList() {
			printPlutusData(w, item, depth+1)
		}
		indent(w, depth)
		fmt.Fprintf(w, "]\n")
	case plutus.KindInt:
		indent(w, depth)
		fmt.Fprintf(w, "Int(%s)\n", d.AsInt().String())
	case plutus.KindByteArray:
		indent(w, depth)
		fmt.Fprintf(w, "ByteArray(h'%s')\n", hex.EncodeToString(d.AsByteArray()))
	}
}
