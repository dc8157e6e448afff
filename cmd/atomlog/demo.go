// File: cmd/atomlog/demo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
	"github.com/momentics/atomlog/drain"
)

func newDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Push synthetic records into a private store and drain them to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			size, _ := cmd.Flags().GetInt("size")
			if count < 0 || size < 0 {
				return fmt.Errorf("count and size must be non-negative")
			}
			return demo(cmd.Context(), cmd.OutOrStdout(), count, size)
		},
	}
	cmd.Flags().Int("count", atomlog.MaxRecords+10, "Number of records to push")
	cmd.Flags().Int("size", 48, "Payload bytes per record")
	return cmd
}

func demo(ctx context.Context, out io.Writer, count, size int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store := atomlog.NewStore()
	for i := 0; i < count; i++ {
		rec := fmt.Sprintf("demo %06d %s", i, strings.Repeat("*", size))
		if err := store.PushString(rec); err != nil {
			fmt.Fprintf(out, "record %d: %v\n", i, err)
		}
	}

	d := drain.New(store, drain.Options{Sinks: []api.Sink{drain.NewWriterSink(out)}})
	if _, err := d.DrainOnce(ctx); err != nil {
		return err
	}
	st, ds := store.Stats(), d.Stats()
	fmt.Fprintf(out, "pushes=%d evictions=%d truncations=%d emitted=%d\n",
		st.Pushes, st.Evictions, st.Truncations, ds.Emitted)
	return nil
}
