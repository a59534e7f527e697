package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ridoystarlord/lifeplan/client"
	"github.com/ridoystarlord/lifeplan/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// checklistCmd builds the command group of a title/completed list.
func checklistCmd(use, noun string, list func(*client.Client) *client.Checklist) *cobra.Command {
	group := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Manage the %s checklist", noun),
	}

	setCompleted := func(completed bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if err := list(newClient()).SetCompleted(cmd.Context(), args[0], completed); err != nil {
				return err
			}
			success("%s %q marked %s", noun, args[0], map[bool]string{true: "done", false: "open"}[completed])
			return nil
		}
	}

	group.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List " + use,
			Args:  exactArgs(0, use+" list"),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := list(newClient()).List(cmd.Context())
				if err != nil {
					return err
				}
				heading("%s", strings.ToUpper(use[:1])+use[1:])
				if len(items) == 0 {
					empty(use)
				}
				for _, it := range items {
					fmt.Printf("   %s %s\n", checkbox(it.Completed), it.Text)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <title>",
			Short: "Add a " + noun,
			Args:  exactArgs(1, use+" add <title>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := list(newClient()).Add(cmd.Context(), args[0]); err != nil {
					return err
				}
				success("%s %q added", noun, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "done <title>",
			Short: "Mark a " + noun + " as completed",
			Args:  exactArgs(1, use+" done <title>"),
			RunE:  setCompleted(true),
		},
		&cobra.Command{
			Use:   "undo <title>",
			Short: "Mark a " + noun + " as not completed",
			Args:  exactArgs(1, use+" undo <title>"),
			RunE:  setCompleted(false),
		},
		&cobra.Command{
			Use:   "rename <title> <new-title>",
			Short: "Rename a " + noun,
			Args:  exactArgs(2, use+" rename <title> <new-title>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := list(newClient()).Rename(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				success("%s %q renamed to %q", noun, args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <title>",
			Short: "Delete a " + noun,
			Args:  exactArgs(1, use+" rm <title>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := list(newClient()).Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				success("%s %q deleted", noun, args[0])
				return nil
			},
		},
	)
	return group
}

// Wishlist

var (
	wishImage string
	wishPrice string
	wishTitle string
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage the wishlist",
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", s)
	}
	return &d, nil
}

func uploadWish(cmd *cobra.Command, c *client.Client, path string) (string, error) {
	f, name, err := readImage(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return c.UploadWishImage(cmd.Context(), name, f)
}

var wishListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wishlist items",
	Args:  exactArgs(0, "wishlist list"),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := newClient().ListWishes(cmd.Context())
		if err != nil {
			return err
		}
		heading("Wishlist")
		if len(items) == 0 {
			empty("items")
		}
		for _, it := range items {
			price := ""
			if it.Price != nil {
				price = " " + green.Sprint(it.Price.StringFixed(2))
			}
			fmt.Printf("   🎁 %s%s %s\n", it.Title, price, faint.Sprint(it.ImagePath))
		}
		return nil
	},
}

var wishAddCmd = &cobra.Command{
	Use:   "add <title> --image <file>",
	Short: "Add a wishlist item with its picture",
	Args:  exactArgs(1, "wishlist add <title> --image <file> [--price 9.99]"),
	RunE: func(cmd *cobra.Command, args []string) error {
		if wishImage == "" {
			return fmt.Errorf("--image is required")
		}
		price, err := parsePrice(wishPrice)
		if err != nil {
			return err
		}
		c := newClient()
		path, err := uploadWish(cmd, c, wishImage)
		if err != nil {
			return err
		}
		id, err := c.AddWish(cmd.Context(), store.WishlistItem{Title: args[0], ImagePath: path, Price: price})
		if err != nil {
			return err
		}
		success("wishlist item %q added (id %d)", args[0], id)
		return nil
	},
}

var wishEditCmd = &cobra.Command{
	Use:   "edit <title>",
	Short: "Change the title, picture or price of a wishlist item",
	Args:  exactArgs(1, "wishlist edit <title> [--title new] [--image file] [--price 9.99]"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()
		items, err := c.ListWishes(ctx)
		if err != nil {
			return err
		}
		var current *store.WishlistItem
		for i := range items {
			if items[i].Title == args[0] {
				current = &items[i]
			}
		}
		if current == nil {
			return fmt.Errorf("wishlist item %q not found", args[0])
		}

		next := *current
		if cmd.Flags().Changed("title") {
			next.Title = wishTitle
		}
		if cmd.Flags().Changed("price") {
			if next.Price, err = parsePrice(wishPrice); err != nil {
				return err
			}
		}
		if wishImage != "" {
			if next.ImagePath, err = uploadWish(cmd, c, wishImage); err != nil {
				return err
			}
		}
		if err := c.UpdateWish(ctx, current.Title, current.ImagePath, next); err != nil {
			return err
		}
		success("wishlist item %q updated", next.Title)
		return nil
	},
}

var wishRemoveCmd = &cobra.Command{
	Use:   "rm <title>",
	Short: "Remove a wishlist item and its picture",
	Args:  exactArgs(1, "wishlist rm <title>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().RemoveWish(cmd.Context(), args[0]); err != nil {
			return err
		}
		success("wishlist item %q removed", args[0])
		return nil
	},
}

var wishImageCmd = &cobra.Command{
	Use:   "image <image-path> <out-file>",
	Short: "Download the picture of a wishlist item",
	Args:  exactArgs(2, "wishlist image <image-path> <out-file>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		if err := newClient().Download(cmd.Context(), args[0], f); err != nil {
			f.Close()
			os.Remove(args[1])
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		success("saved %s", args[1])
		return nil
	},
}

// Books

var (
	bookAuthors  []string
	bookLanguage string
	bookStatus   string
	bookLink     string
	bookSeries   string
	bookBanner   string
	bookIcon     string
	bookCover    string
	bookTitle    string
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage the reading list",
}

// applyBookFlags copies the flags the user set onto b and uploads a new cover.
func applyBookFlags(cmd *cobra.Command, c *client.Client, b *store.Book) error {
	flags := cmd.Flags()
	if flags.Changed("author") {
		b.Authors = bookAuthors
	}
	if flags.Changed("language") {
		b.Language = bookLanguage
	}
	if flags.Changed("status") {
		b.Status = bookStatus
	}
	if flags.Changed("link") {
		b.Link = bookLink
	}
	if flags.Changed("series") {
		b.Series = bookSeries
	}
	if flags.Changed("banner") {
		b.BannerPath = bookBanner
	}
	if flags.Changed("icon") {
		b.IconPath = bookIcon
	}
	if flags.Changed("title") {
		b.Title = bookTitle
	}
	if bookCover != "" {
		f, name, err := readImage(bookCover)
		if err != nil {
			return err
		}
		defer f.Close()
		path, err := c.UploadBookImage(cmd.Context(), name, f)
		if err != nil {
			return err
		}
		b.CoverPath = path
	}
	return nil
}

func addBookFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&bookAuthors, "author", "a", nil, "author (repeatable)")
	f.StringVar(&bookLanguage, "language", "", "language")
	f.StringVar(&bookStatus, "status", "", "reading status")
	f.StringVar(&bookLink, "link", "", "link to the book")
	f.StringVar(&bookSeries, "series", "", "series name")
	f.StringVar(&bookBanner, "banner", "", "banner name")
	f.StringVar(&bookIcon, "icon", "", "icon name")
	f.StringVar(&bookCover, "cover", "", "cover image file to upload")
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	Args:  exactArgs(0, "books list"),
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := newClient().ListBooks(cmd.Context())
		if err != nil {
			return err
		}
		heading("Reading list")
		if len(books) == 0 {
			empty("books")
		}
		for _, b := range books {
			fmt.Printf("   📖 %s", bold.Sprint(b.Title))
			if len(b.Authors) > 0 {
				fmt.Printf(" by %s", strings.Join(b.Authors, ", "))
			}
			if b.Status != "" {
				fmt.Printf(" [%s]", b.Status)
			}
			fmt.Println()
			if b.Series != "" {
				faint.Printf("      series: %s\n", b.Series)
			}
			if b.Link != "" {
				faint.Printf("      %s\n", b.Link)
			}
		}
		return nil
	},
}

var bookAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a book",
	Args:  exactArgs(1, "books add <title> [flags]"),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		b := store.Book{Title: args[0]}
		if err := applyBookFlags(cmd, c, &b); err != nil {
			return err
		}
		id, err := c.AddBook(cmd.Context(), b)
		if err != nil {
			return err
		}
		success("book %q added (id %d)", b.Title, id)
		return nil
	},
}

var bookEditCmd = &cobra.Command{
	Use:   "edit <title>",
	Short: "Update a book; only the given flags change",
	Args:  exactArgs(1, "books edit <title> [flags]"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()
		books, err := c.ListBooks(ctx)
		if err != nil {
			return err
		}
		for _, b := range books {
			if b.Title != args[0] {
				continue
			}
			if err := applyBookFlags(cmd, c, &b); err != nil {
				return err
			}
			if err := c.UpdateBook(ctx, args[0], b); err != nil {
				return err
			}
			success("book %q updated", b.Title)
			return nil
		}
		return fmt.Errorf("book %q not found", args[0])
	},
}

var bookRemoveCmd = &cobra.Command{
	Use:   "rm <title>",
	Short: "Delete a book and its cover",
	Args:  exactArgs(1, "books rm <title>"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()
		books, err := c.ListBooks(ctx)
		if err != nil {
			return err
		}
		cover := ""
		for _, b := range books {
			if b.Title == args[0] {
				cover = b.CoverPath
			}
		}
		if err := c.DeleteBook(ctx, args[0]); err != nil {
			return err
		}
		if cover != "" {
			if err := c.DeleteBookImage(ctx, cover); err != nil && !client.IsNotFound(err) {
				clog.Warningf("cover %s not removed: %s", cover, err)
			}
		}
		success("book %q deleted", args[0])
		return nil
	},
}

func namesCmd(use, short string, fetch func(*client.Client, *cobra.Command) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(0, "books "+use),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := fetch(newClient(), cmd)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println("  ", n)
			}
			return nil
		},
	}
}

func init() {
	wishlistCmd.PersistentFlags().StringVar(&wishImage, "image", "", "picture file to upload")
	wishlistCmd.PersistentFlags().StringVar(&wishPrice, "price", "", "price, e.g. 19.99")
	wishEditCmd.Flags().StringVar(&wishTitle, "title", "", "new title")
	wishlistCmd.AddCommand(wishListCmd, wishAddCmd, wishEditCmd, wishRemoveCmd, wishImageCmd)

	addBookFlags(bookAddCmd)
	addBookFlags(bookEditCmd)
	bookEditCmd.Flags().StringVar(&bookTitle, "title", "", "new title")
	booksCmd.AddCommand(bookListCmd, bookAddCmd, bookEditCmd, bookRemoveCmd,
		namesCmd("banners", "List available banners", func(c *client.Client, cmd *cobra.Command) ([]string, error) {
			return c.Banners(cmd.Context())
		}),
		namesCmd("icons", "List available icons", func(c *client.Client, cmd *cobra.Command) ([]string, error) {
			return c.Icons(cmd.Context())
		}),
	)
}
