// interpreter_info bootstraps the "Interpreter" client and prints its devices and memory spaces.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gomlx/interpreter/interpreter"
	"github.com/gomlx/interpreter/pjrt"
	"github.com/janpfeifer/gonb/common"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"k8s.io/klog/v2"
)

var (
	flagFormat = flag.String("format", "text", "Output format: text, json or prototext.")
	flagOutput = flag.String("output", "", "File where to write the output. If empty, it writes to stdout.")
	flagRepeat = flag.Int("repeat", 1, "Number of times to bootstrap the client: all clients share the same low-level client.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `interpreter_info creates a client for the "Interpreter" platform and describes it.

Usage:
`)
		flag.PrintDefaults()
	}
	klog.InitFlags(flag.CommandLine)
	flag.Parse()
	if *flagRepeat < 1 {
		klog.Fatalf("-repeat must be >= 1, got %d", *flagRepeat)
	}

	var clients []*pjrt.Client
	for range *flagRepeat {
		client, err := interpreter.GetClient()
		if err != nil {
			klog.Fatalf("Failed to bootstrap the interpreter client: %+v", err)
		}
		clients = append(clients, client)
	}
	defer func() {
		for _, client := range clients {
			if err := client.Destroy(); err != nil {
				klog.Errorf("Failed to destroy %s: %+v", client, err)
			}
		}
	}()
	for _, client := range clients[1:] {
		if client.LocalClient() != clients[0].LocalClient() {
			klog.Fatalf("Clients are not sharing the same low-level client!?")
		}
	}

	output, err := describe(clients[0], *flagFormat)
	if err != nil {
		klog.Fatalf("%+v", err)
	}
	if *flagOutput == "" {
		fmt.Print(output)
		return
	}
	outputPath := common.ReplaceTildeInDir(*flagOutput)
	must.M(os.WriteFile(outputPath, []byte(output), 0644))
	klog.Infof("Description of %s written to %s", clients[0], outputPath)
}

// describe the client in the given format.
func describe(client *pjrt.Client, format string) (string, error) {
	format = strings.ToLower(format)
	switch format {
	case "text":
		var sb strings.Builder
		_, _ = fmt.Fprintf(&sb, "%s\n", client)
		for _, device := range client.Devices() {
			_, _ = fmt.Fprintf(&sb, "\t%s (%s)\n", device, device.LocalDeviceState())
			for _, memorySpace := range device.MemorySpaces() {
				var isDefault string
				if defaultMemorySpace, err := device.DefaultMemorySpace(); err == nil && defaultMemorySpace == memorySpace {
					isDefault = " [default]"
				}
				_, _ = fmt.Fprintf(&sb, "\t\t%s%s\n", memorySpace, isDefault)
			}
		}
		_, _ = fmt.Fprintf(&sb, "Attributes:\n%s", client.Attributes())
		return sb.String(), nil
	case "json", "prototext":
		attributes, err := client.Attributes().ToStruct()
		if err != nil {
			return "", err
		}
		if format == "json" {
			return protojson.Format(attributes) + "\n", nil
		}
		return prototext.Format(attributes), nil
	default:
		return "", errors.Errorf("unknown output format %q, valid values are text, json or prototext", format)
	}
}
