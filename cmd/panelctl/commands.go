package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/restaurant-panel/panelapi"
)

func loginCmd(ctx context.Context, a *app, args []string) error {
	email, password := a.cfg.GetOperatorEmail(), a.cfg.GetOperatorPassword()
	switch len(args) {
	case 0:
	case 2:
		email, password = args[0], args[1]
	default:
		return errUsage
	}
	if email == "" || password == "" {
		return errUsage
	}
	if err := a.panel.Session.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", email)
	return nil
}

func logoutCmd(ctx context.Context, a *app, args []string) error {
	a.panel.Session.Logout(ctx)
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func statusCmd(ctx context.Context, a *app, args []string) error {
	if !a.panel.Session.IsAuthenticated() {
		fmt.Fprintln(a.out, "anonymous")
		return nil
	}
	expiry := a.panel.Session.Expiry()
	fmt.Fprintf(a.out, "authenticated, access token expires %s (in %s)\n",
		expiry.Format(time.RFC3339), time.Until(expiry).Round(time.Second))
	return nil
}

func categoriesCmd(ctx context.Context, a *app, args []string) error {
	categories, err := a.panel.Menu.Categories(ctx)
	if err != nil {
		return err
	}
	tw := a.table("ID", "SLUG", "NAME TR", "NAME EN")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Slug, c.NameTr, c.NameEn)
	}
	return tw.Flush()
}

func categoryCmd(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch verb, rest := args[0], args[1:]; {
	case verb == "add" && len(rest) == 2:
		c, err := a.panel.Menu.AddCategory(ctx, panelapi.CategoryRequest{NameTr: rest[0], NameEn: rest[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "added category %s\n", c.ID)
	case verb == "update" && len(rest) == 3:
		c, err := a.panel.Menu.UpdateCategory(ctx, rest[0], panelapi.CategoryRequest{NameTr: rest[1], NameEn: rest[2]})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "updated category %s\n", c.ID)
	case verb == "delete" && len(rest) == 1:
		if err := a.panel.Menu.DeleteCategory(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted category %s\n", rest[0])
	default:
		return errUsage
	}
	return nil
}

func itemsCmd(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	items, err := a.panel.Menu.Items(ctx, args[0])
	if err != nil {
		return err
	}
	tw := a.table("ID", "NAME", "NAME EN", "PRICE 1", "PRICE 2")
	for _, i := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", i.ID, i.Name, i.NameEn, i.Price1, formatPrice(i.Price2))
	}
	return tw.Flush()
}

func formatPrice(p float64) string {
	if p == 0 {
		return "-"
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func itemCmd(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	verb, rest := args[0], args[1:]
	if verb == "delete" {
		if len(rest) != 1 {
			return errUsage
		}
		if err := a.panel.Menu.DeleteItem(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted item %s\n", rest[0])
		return nil
	}
	if verb != "add" && verb != "update" {
		return errUsage
	}

	flags := flag.NewFlagSet("item "+verb, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	descTr := flags.String("desc-tr", "", "Turkish description")
	descEn := flags.String("desc-en", "", "English description")
	positional, err := parseInterspersed(flags, rest)
	if err != nil || len(positional) < 4 || len(positional) > 5 {
		return errUsage
	}
	req := panelapi.MenuItemRequest{
		Name:          positional[1],
		NameEn:        positional[2],
		DescriptionTr: *descTr,
		DescriptionEn: *descEn,
	}
	if req.Price1, err = strconv.ParseFloat(positional[3], 64); err != nil {
		return fmt.Errorf("price1: %w", err)
	}
	if len(positional) == 5 {
		if req.Price2, err = strconv.ParseFloat(positional[4], 64); err != nil {
			return fmt.Errorf("price2: %w", err)
		}
	}

	if verb == "add" {
		req.CategoryID = positional[0]
		item, err := a.panel.Menu.AddItem(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "added item %s\n", item.ID)
		return nil
	}
	item, err := a.panel.Menu.UpdateItem(ctx, positional[0], req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated item %s\n", item.ID)
	return nil
}

func photosCmd(ctx context.Context, a *app, args []string) error {
	photos, err := a.panel.Gallery.Photos(ctx)
	if err != nil {
		return err
	}
	tw := a.table("ID", "IMAGE", "TITLE TR", "TITLE EN", "LABELS")
	for _, p := range photos {
		names := make([]string, 0, len(p.Labels))
		for _, l := range p.Labels {
			names = append(names, l.NameEn)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.ImageURL, p.TitleTr, p.TitleEn, strings.Join(names, ","))
	}
	return tw.Flush()
}

func photoCmd(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	verb, rest := args[0], args[1:]
	if verb == "delete" {
		if len(rest) != 1 {
			return errUsage
		}
		if err := a.panel.Gallery.DeletePhoto(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted photo %s\n", rest[0])
		return nil
	}
	if verb != "add" && verb != "update" {
		return errUsage
	}

	flags := flag.NewFlagSet("photo "+verb, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	titleTr := flags.String("title-tr", "", "Turkish title")
	titleEn := flags.String("title-en", "", "English title")
	descTr := flags.String("desc-tr", "", "Turkish description")
	descEn := flags.String("desc-en", "", "English description")
	labels := flags.String("labels", "", "comma separated label ids")
	positional, err := parseInterspersed(flags, rest)
	if err != nil {
		return errUsage
	}
	req := panelapi.PhotoRequest{
		TitleTr:       *titleTr,
		TitleEn:       *titleEn,
		DescriptionTr: *descTr,
		DescriptionEn: *descEn,
		LabelIDs:      splitIDs(*labels),
	}

	switch {
	case verb == "add" && len(positional) == 1:
		req.ImageURL = positional[0]
		photo, err := a.panel.Gallery.AddPhoto(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "added photo %s\n", photo.ID)
	case verb == "update" && len(positional) == 2:
		req.ImageURL = positional[1]
		photo, err := a.panel.Gallery.UpdatePhoto(ctx, positional[0], req)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "updated photo %s\n", photo.ID)
	default:
		return errUsage
	}
	return nil
}

func labelsCmd(ctx context.Context, a *app, args []string) error {
	labels, err := a.panel.Gallery.Labels(ctx)
	if err != nil {
		return err
	}
	tw := a.table("ID", "NAME TR", "NAME EN")
	for _, l := range labels {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.NameTr, l.NameEn)
	}
	return tw.Flush()
}

func labelCmd(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch verb, rest := args[0], args[1:]; {
	case verb == "add" && len(rest) == 2:
		l, err := a.panel.Gallery.AddLabel(ctx, panelapi.LabelRequest{NameTr: rest[0], NameEn: rest[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "added label %s\n", l.ID)
	case verb == "update" && len(rest) == 3:
		l, err := a.panel.Gallery.UpdateLabel(ctx, rest[0], panelapi.LabelRequest{NameTr: rest[1], NameEn: rest[2]})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "updated label %s\n", l.ID)
	case verb == "delete" && len(rest) == 1:
		if err := a.panel.Gallery.DeleteLabel(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted label %s\n", rest[0])
	default:
		return errUsage
	}
	return nil
}

func reorderCmd(ctx context.Context, a *app, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	var err error
	switch args[0] {
	case "categories":
		err = a.panel.Menu.ReorderCategories(ctx, args[1:])
	case "items":
		if len(args) < 3 {
			return errUsage
		}
		err = a.panel.Menu.ReorderItems(ctx, args[1], args[2:])
	case "photos":
		err = a.panel.Gallery.ReorderPhotos(ctx, args[1:])
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "reordered %s\n", args[0])
	return nil
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments.
func parseInterspersed(flags *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			return nil, err
		}
		if flags.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, flags.Arg(0))
		args = flags.Args()[1:]
	}
}

func splitIDs(s string) []string {
	ids := []string{}
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
