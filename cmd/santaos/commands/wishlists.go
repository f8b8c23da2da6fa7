package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"santaos/internal/domain"
)

func wishlistsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "wishlists", Short: "Children's wishlists"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List wishlists visible to you",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return list(cmd, appCtx.Wishlists, renderWishlists)
			},
		},
		wishlistSubmitCmd(),
		&cobra.Command{
			Use:   "status <id> <status>",
			Short: "Move a wishlist to pending, approved, rejected, in_production or fulfilled",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				st := domain.WishlistStatus(args[1])
				if !st.Valid() {
					return fmt.Errorf("unknown wishlist status %q", args[1])
				}
				if _, err := submit(cmd, appCtx.Wishlists, args[0], domain.OpUpdateStatus, domain.StatusChange{Status: string(st)}); err != nil {
					return err
				}
				done(cmd, "Wishlist %s is now %s.", args[0], st)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Withdraw a wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := submit(cmd, appCtx.Wishlists, args[0], domain.OpDelete, nil); err != nil {
					return err
				}
				done(cmd, "Wishlist %s deleted.", args[0])
				return nil
			},
		},
	)
	return cmd
}

func wishlistSubmitCmd() *cobra.Command {
	var in domain.NewWishlist
	var items []string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a wishlist for a child",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Items = in.Items[:0]
			for _, raw := range items {
				it, err := parseItem(raw)
				if err != nil {
					return err
				}
				in.Items = append(in.Items, it)
			}
			w, err := submit(cmd, appCtx.Wishlists, "", domain.OpCreate, in)
			if err != nil {
				return err
			}
			if w.ID == "" {
				done(cmd, "Wishlist for %s submitted.", in.ChildName)
				return nil
			}
			done(cmd, "Wishlist %s for %s submitted (%s).", w.ID, w.ChildName, w.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.ChildName, "child", "", "child's name")
	cmd.Flags().IntVar(&in.ChildAge, "age", 0, "child's age")
	cmd.Flags().StringVar(&in.Address, "address", "", "delivery address")
	cmd.Flags().StringArrayVar(&items, "item", nil, `gift as "name" or "name:quantity"; repeatable`)
	_ = cmd.MarkFlagRequired("child")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

// parseItem reads "name" or "name:quantity".
func parseItem(raw string) (domain.WishlistItem, error) {
	name, qty, found := strings.Cut(raw, ":")
	it := domain.WishlistItem{Name: strings.TrimSpace(name), Quantity: 1}
	if it.Name == "" {
		return it, fmt.Errorf("item %q has no name", raw)
	}
	if found {
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil || n < 1 {
			return it, fmt.Errorf("item %q: quantity must be a positive number", raw)
		}
		it.Quantity = n
	}
	return it, nil
}
