package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/robgonnella/btscan/internal/service"
)

// printService writes one tab separated line per service
func printService(w io.Writer, desc service.Descriptor) {
	ids := []string{}

	if desc.ServiceUUID != nil {
		ids = append(ids, desc.ServiceUUID.String())
	}

	for _, u := range desc.ClassUUIDs {
		ids = append(ids, u.String())
	}

	transport := "-"

	if channel, ok := desc.RFCOMMChannel(); ok {
		transport = fmt.Sprintf("rfcomm:%d", channel)
	} else if psm, ok := desc.L2CAPPSM(); ok {
		transport = fmt.Sprintf("l2cap:0x%04x", psm)
	}

	fmt.Fprintf(
		w,
		"%s\t%s\t%s\t%s\n",
		desc.Device,
		desc.Name,
		transport,
		strings.Join(ids, ","),
	)
}
