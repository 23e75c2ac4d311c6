// Command nesinfo dumps an iNES cartridge's header fields and reports
// whether the cartridge loader accepts the file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/nescore/nescore/pkg/cartridge"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() < 1 {
		glog.Fatalf("usage: nesinfo <rom-file>")
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		glog.Fatalf("reading %s: %v", path, err)
	}

	fmt.Printf("file:       %s\n", path)
	fmt.Printf("size:       %d bytes\n", len(data))

	if len(data) < 16 {
		fmt.Println("too small to carry an iNES header")
		os.Exit(1)
	}

	fmt.Printf("magic:      %q\n", data[0:4])
	fmt.Printf("prg banks:  %d (%d KiB)\n", data[4], int(data[4])*16)
	fmt.Printf("chr banks:  %d (%d KiB)\n", data[5], int(data[5])*8)

	flags6, flags7 := data[6], data[7]
	mapperID := (flags7 & 0xF0) | (flags6 >> 4)
	fmt.Printf("mapper id:  %d\n", mapperID)
	fmt.Printf("battery:    %v\n", flags6&0x02 != 0)
	fmt.Printf("trainer:    %v\n", flags6&0x04 != 0)
	fmt.Printf("4-screen:   %v\n", flags6&0x08 != 0)

	cart, err := cartridge.Load(data)
	if err != nil {
		var unsupported *cartridge.UnsupportedMapperError
		switch {
		case errors.As(err, &unsupported):
			fmt.Printf("load:       unsupported mapper %d\n", unsupported.ID)
		default:
			fmt.Printf("load:       %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("load:       ok, mirroring=%v\n", cart.Mirroring())
}
