package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jrsteele09/hyp3-catalog/aoi"
	"github.com/jrsteele09/hyp3-catalog/catalog"
	"github.com/jrsteele09/hyp3-catalog/earthdata"
	"github.com/jrsteele09/hyp3-catalog/hyp3"
	"github.com/jrsteele09/hyp3-catalog/internal/config"
	"github.com/jrsteele09/hyp3-catalog/internal/display"
	"github.com/jrsteele09/hyp3-catalog/vertex"
)

const flagDateLayout = "2006-01-02"

type app struct {
	cfg     config.Config
	stdin   *os.File
	out     io.Writer
	display display.Display
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "subscriptions":
		return a.subscriptions(ctx, args)
	case "products":
		return a.products(ctx, args)
	case "granules":
		return a.granules(ctx, args)
	case "correlate":
		return a.correlate(ctx, args)
	case "dates":
		return a.dates(ctx, args)
	case "aoi":
		return a.aoi(args)
	case "proxy":
		return a.proxy(args)
	}
	return fmt.Errorf("unknown command %q", command)
}

func (a *app) service(ctx context.Context) (*catalog.Service, error) {
	factory := hyp3.ClientFactory(
		hyp3.WithBaseURL(a.cfg.GetHyp3URL()),
		hyp3.WithProductsURL(a.cfg.GetProductsURL()),
	)
	m, err := earthdata.NewManager(factory, earthdata.NewTerminalInput(a.stdin, a.out), earthdata.WithDisplay(a.display))
	if err != nil {
		return nil, err
	}
	session, err := m.Login(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewService(session,
		catalog.WithDisplay(a.display),
		catalog.WithPageSize(a.cfg.GetPageSize()),
		catalog.WithMaxKeyRotations(a.cfg.GetMaxKeyRotations()),
	)
}

func (a *app) subscriptions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("subscriptions", flag.ContinueOnError)
	group := fs.String("group", "", "group id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}
	subs, err := svc.Subscriptions(ctx, *group)
	if err != nil {
		return err
	}
	for _, s := range subs {
		fmt.Fprintln(a.out, s.String())
	}
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	sub := fs.String("sub", "", "subscription id")
	group := fs.String("group", "", "group id")
	wget := fs.Bool("wget", false, "print wget download commands instead of names")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sub == "" {
		return fmt.Errorf("products: -sub is required")
	}

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}
	products, err := svc.SubscriptionProducts(ctx, *sub, *group)
	if err != nil {
		return err
	}
	for _, p := range products {
		if *wget {
			fmt.Fprintln(a.out, svc.WgetCommand(p.URL))
			continue
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", p.LocalQueueID, p.Name, p.URL)
	}
	return nil
}

func (a *app) granules(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("granules", flag.ContinueOnError)
	sub := fs.String("sub", "", "subscription id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sub == "" {
		return fmt.Errorf("granules: -sub is required")
	}

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}
	granules, err := svc.SubscriptionGranules(ctx, *sub)
	if err != nil {
		return err
	}
	for _, name := range granules.Names() {
		id, _ := granules.JobID(name)
		fmt.Fprintf(a.out, "%s\t%s\n", id, name)
	}
	return nil
}

func (a *app) correlate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("correlate", flag.ContinueOnError)
	sub := fs.String("sub", "", "subscription id")
	group := fs.String("group", "", "group id")
	start := fs.String("start", "", "first acquisition day, yyyy-mm-dd")
	end := fs.String("end", "", "last acquisition day, yyyy-mm-dd")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sub == "" {
		return fmt.Errorf("correlate: -sub is required")
	}
	r, err := parseRange(*start, *end)
	if err != nil {
		return err
	}

	lookup, err := vertex.NewClient(
		vertex.WithSearchURL(a.cfg.GetVertexURL()),
		vertex.WithRateLimit(a.cfg.GetVertexRequestsPerSecond()),
	)
	if err != nil {
		return err
	}
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}
	granules, err := svc.SubscriptionGranules(ctx, *sub)
	if err != nil {
		return err
	}
	products, err := svc.SubscriptionProducts(ctx, *sub, *group)
	if err != nil {
		return err
	}

	result, err := catalog.Correlate(ctx, lookup, granules, products, r)
	if err != nil {
		return err
	}
	if result.Len() == 0 {
		a.display.Show("Found no products acquired between %s and %s", r.Start.Format(flagDateLayout), r.End.Format(flagDateLayout))
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (a *app) dates(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dates", flag.ContinueOnError)
	sub := fs.String("sub", "", "subscription id")
	group := fs.String("group", "", "group id")
	insar := fs.Bool("insar", false, "products carry reference and secondary dates")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sub == "" {
		return fmt.Errorf("dates: -sub is required")
	}

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}
	products, err := svc.SubscriptionProducts(ctx, *sub, *group)
	if err != nil {
		return err
	}
	dates := catalog.SortedAcquisitionDates(products, *insar)
	if len(dates) == 0 {
		a.display.Show("Found no dated products for subscription: %s", *sub)
		return nil
	}
	for _, d := range dates {
		fmt.Fprintln(a.out, d)
	}
	days, err := catalog.DailyOptions(dates)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "selectable range: %s to %s (%d days)\n",
		days[0].Format(flagDateLayout), days[len(days)-1].Format(flagDateLayout), len(days))
	return nil
}

func (a *app) aoi(args []string) error {
	fs := flag.NewFlagSet("aoi", flag.ContinueOnError)
	llx := fs.Float64("llx", -aoi.MaxX, "lower left x, EPSG:3857")
	lly := fs.Float64("lly", -aoi.MaxY, "lower left y, EPSG:3857")
	urx := fs.Float64("urx", aoi.MaxX, "upper right x, EPSG:3857")
	ury := fs.Float64("ury", aoi.MaxY, "upper right y, EPSG:3857")
	if err := fs.Parse(args); err != nil {
		return err
	}

	area, err := aoi.New(aoi.Point{X: *llx, Y: *lly}, aoi.Point{X: *urx, Y: *ury},
		aoi.WithObserver(subsetPrinter(a.out)),
	)
	if err != nil {
		return err
	}
	return applyEvents(a.stdin, area)
}

func (a *app) proxy(args []string) error {
	fs := flag.NewFlagSet("proxy", flag.ContinueOnError)
	port := fs.Int("port", 0, "local port")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := a.cfg.GetProxy()
	if *port == 0 {
		host, err := p.Host()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, host)
		return nil
	}
	u, err := p.URL(*port)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, u)
	return nil
}

func parseRange(start, end string) (catalog.DateRange, error) {
	s, err := time.Parse(flagDateLayout, start)
	if err != nil {
		return catalog.DateRange{}, fmt.Errorf("invalid -start %q: %w", start, err)
	}
	e, err := time.Parse(flagDateLayout, end)
	if err != nil {
		return catalog.DateRange{}, fmt.Errorf("invalid -end %q: %w", end, err)
	}
	if e.Before(s) {
		return catalog.DateRange{}, fmt.Errorf("-end %s is before -start %s", end, start)
	}
	return catalog.DateRange{Start: s, End: e}, nil
}
