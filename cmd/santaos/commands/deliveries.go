package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"santaos/internal/domain"
)

func deliveriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "deliveries", Short: "Sleigh deliveries"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List deliveries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return list(cmd, appCtx.Deliveries, renderDeliveries)
			},
		},
		deliveryCreateCmd(),
		&cobra.Command{
			Use:   "status <id> <status>",
			Short: "Move a delivery to pending, in_transit, delivered or failed",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				st := domain.DeliveryStatus(args[1])
				if !st.Valid() {
					return fmt.Errorf("unknown delivery status %q", args[1])
				}
				if _, err := submit(cmd, appCtx.Deliveries, args[0], domain.OpUpdateStatus, domain.StatusChange{Status: string(st)}); err != nil {
					return err
				}
				done(cmd, "Delivery %s is now %s.", args[0], st)
				return nil
			},
		},
	)
	return cmd
}

func deliveryCreateCmd() *cobra.Command {
	var in domain.NewDelivery
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := submit(cmd, appCtx.Deliveries, "", domain.OpCreate, in)
			if err != nil {
				return err
			}
			if d.ID == "" {
				done(cmd, "Delivery to %s scheduled.", in.Recipient)
				return nil
			}
			done(cmd, "Delivery %s to %s scheduled.", d.ID, d.Recipient)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Recipient, "recipient", "", "who receives it")
	cmd.Flags().StringVar(&in.Address, "address", "", "where it goes")
	cmd.Flags().StringVar(&in.WishlistID, "wishlist", "", "fulfilled wishlist id")
	_ = cmd.MarkFlagRequired("recipient")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}
