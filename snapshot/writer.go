package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// WriteText emits balances as the stable line-oriented text format from
// spec.md §4.8: "address:amount\n", keys in ascending lexicographic order.
func WriteText(w io.Writer, balances BalanceDelta) error {
	addrs := make([]string, 0, len(balances))
	for addr := range balances {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	bw := bufio.NewWriter(w)
	for _, addr := range addrs {
		if _, err := fmt.Fprintf(bw, "%s:%d\n", addr, balances[addr]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
