package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive RDM probe shell over the configured fleet",
		Long: "Reads probe lines from stdin and dispatches them straight to the " +
			"simulated fleet, one request per line:\n\n" +
			"  get <uid> <pid> [hexdata]\n" +
			"  set <uid> <pid> [hexdata]\n" +
			"  uids\n" +
			"  pids <uid>\n\n" +
			"NACK reasons are decoded to their E1.20 names inline.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runShell(os.Stdin, os.Stdout)
		},
	}
}

// runShell is the probe loop. Each line is parsed as a verb plus
// operands and dispatched synchronously; responder state (DMX addresses,
// presets, AckTimer queues) persists across lines, so a set/get sequence
// behaves exactly as two wire transactions from the same controller.
func runShell(in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "%d responder(s) loaded. 'help' lists commands, 'exit' quits.\n", len(fleet))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "rdm[%d]> ", len(fleet))
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		verb, args := fields[0], fields[1:]
		switch verb {
		case "exit", "quit":
			return nil
		case "help", "?":
			shellHelp(out)
		case "uids":
			shellUIDs(out)
		case "pids":
			shellSupportedPIDs(out, args)
		case "get":
			shellProbe(out, rdm.CCGetCommand, args)
		case "set":
			shellProbe(out, rdm.CCSetCommand, args)
		default:
			fmt.Fprintf(out, "unknown command %q, try 'help'\n", verb)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}

func shellHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  uids                      list fleet UIDs and kinds
  pids <uid>                list a responder's SUPPORTED_PARAMETERS
  get <uid> <pid> [data]    GET a parameter (pid and data in hex)
  set <uid> <pid> [data]    SET a parameter
  exit                      leave the shell
`)
}

// shellUIDs lists the fleet in UID order with each responder's declared
// kind, so probe targets can be copied straight off the screen.
func shellUIDs(out io.Writer) {
	kinds := make(map[string]string, len(cfg.Responders))
	for _, rc := range cfg.Responders {
		kinds[rc.UID] = rc.Kind
	}

	uids := make([]string, 0, len(fleet))
	for uid := range fleet {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	for _, uid := range uids {
		fmt.Fprintf(out, "%s  %s\n", uid, kinds[uid])
	}
}

// shellSupportedPIDs asks one responder for SUPPORTED_PARAMETERS and
// prints the returned PID list.
func shellSupportedPIDs(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: pids <uid>")
		return
	}

	responder, ok := fleet[args[0]]
	if !ok {
		fmt.Fprintf(out, "no responder %q, try 'uids'\n", args[0])
		return
	}

	req := &rdm.RDMRequest{
		SourceUID:         controllerUID,
		DestinationUID:    responder.UID(),
		TransactionNumber: nextTransactionNumber(),
		PortID:            1,
		SubDevice:         rdm.RootRDMDevice,
		CommandClass:      rdm.CCGetCommand,
		ParamID:           rdm.PIDSupportedParameters,
	}

	var resp *rdm.RDMResponse
	responder.SendRDMRequest(req, func(_ rdm.Status, r *rdm.RDMResponse) { resp = r })
	if resp == nil || resp.ResponseType != rdm.ResponseTypeAck {
		fmt.Fprintln(out, "responder did not ACK SUPPORTED_PARAMETERS")
		return
	}

	for i := 0; i+1 < len(resp.ParamData); i += 2 {
		fmt.Fprintf(out, "0x%04x\n", uint16(resp.ParamData[i])<<8|uint16(resp.ParamData[i+1]))
	}
}

// shellProbe parses "<uid> <pid> [hexdata]", dispatches one request, and
// prints the outcome on a single line.
func shellProbe(out io.Writer, cc rdm.CommandClass, args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(out, "usage: get|set <uid> <pid> [hexdata]")
		return
	}

	responder, ok := fleet[args[0]]
	if !ok {
		fmt.Fprintf(out, "no responder %q, try 'uids'\n", args[0])
		return
	}

	pid, err := parsePID(args[1])
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	var data []byte
	if len(args) == 3 {
		data, err = parseParamData(args[2])
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
	}

	req := &rdm.RDMRequest{
		SourceUID:         controllerUID,
		DestinationUID:    responder.UID(),
		TransactionNumber: nextTransactionNumber(),
		PortID:            1,
		SubDevice:         rdm.RootRDMDevice,
		CommandClass:      cc,
		ParamID:           pid,
		ParamData:         data,
	}

	start := time.Now()
	var status rdm.Status
	var resp *rdm.RDMResponse
	responder.SendRDMRequest(req, func(s rdm.Status, r *rdm.RDMResponse) {
		status = s
		resp = r
	})

	metrics.RecordRequest(responder.UID().String(), status.String(), pid)
	metrics.ObserveDispatchLatency(responder.UID().String(), pid, time.Since(start).Seconds())

	switch {
	case resp == nil:
		fmt.Fprintf(out, "%s\n", status)
	case resp.ResponseType == rdm.ResponseTypeNackReason:
		reason, _ := rdm.ExtractUint16(resp.ParamData)
		metrics.RecordNack(responder.UID().String(), rdm.NackReason(reason).String())
		fmt.Fprintf(out, "NACK %s (queued=%d)\n", rdm.NackReason(reason), resp.MessageCount)
	case resp.ResponseType == rdm.ResponseTypeAckTimer:
		tenths, _ := rdm.ExtractUint16(resp.ParamData)
		fmt.Fprintf(out, "ACK_TIMER %dms (queued=%d)\n", int(tenths)*100, resp.MessageCount)
	default:
		fmt.Fprintf(out, "ACK pid=0x%04x data=%x (queued=%d)\n", resp.ParamID, resp.ParamData, resp.MessageCount)
	}
}
