package catalog_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/hyp3-catalog/catalog"
	"github.com/jrsteele09/hyp3-catalog/hyp3"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractAcquisitionDate(t *testing.T) {
	d, ok := catalog.ExtractAcquisitionDate("S1A_IW_GRDH_1SDV_20200615T013245_20200615T013302_033000_03D2D0_AAAA")
	require.True(t, ok)
	require.Equal(t, day(2020, time.June, 15), d)

	_, ok = catalog.ExtractAcquisitionDate("no-date-here")
	require.False(t, ok)

	_, ok = catalog.ExtractAcquisitionDate("S1A_IW_GRDH_1SDV_20201345T013245")
	require.False(t, ok, "month 13 is not a date")

	d, ok = catalog.ExtractAcquisitionDate("S1B_IW_20191231T235959-20200101T000001_VVP")
	require.True(t, ok)
	require.Equal(t, day(2019, time.December, 31), d)
}

func TestProductAcquisitionDate(t *testing.T) {
	d, err := catalog.ProductAcquisitionDate("S1A_IW_GRDH_1SDV_20200615T013245_20200615T013302_033000")
	require.NoError(t, err)
	require.Equal(t, day(2020, time.June, 15), d)

	d, err = catalog.ProductAcquisitionDate("ALOS-20170102")
	require.NoError(t, err)
	require.Equal(t, day(2017, time.January, 2), d)

	for _, name := range []string{"S1A_IW_GRDH", "nodashes", "ALOS-2017", "A_B_C_D_2020xx15T000000"} {
		_, err := catalog.ProductAcquisitionDate(name)
		require.Error(t, err, name)
	}
}

func TestFilterByDateRange(t *testing.T) {
	granules := catalog.NewGranuleSet()
	granules.Add("S1A_IW_GRDH_1SDV_20200615T013245_20200615T013302_033000_03D2D0_AAAA", "1")
	granules.Add("S1A_IW_GRDH_1SDV_20200701T013245_20200701T013302_033350_03DDD0_BBBB", "2")
	granules.Add("undated", "3")
	granules.Add("S1A_IW_GRDH_1SDV_20200601T000000_20200601T000030_032800_03CCC0_CCCC", "4")

	r := catalog.DateRange{Start: day(2020, time.June, 1), End: day(2020, time.June, 30)}
	filtered := catalog.FilterByDateRange(granules, r)

	require.Equal(t, []string{
		"S1A_IW_GRDH_1SDV_20200615T013245_20200615T013302_033000_03D2D0_AAAA",
		"S1A_IW_GRDH_1SDV_20200601T000000_20200601T000030_032800_03CCC0_CCCC",
	}, filtered.Names())
	id, ok := filtered.JobID("S1A_IW_GRDH_1SDV_20200601T000000_20200601T000030_032800_03CCC0_CCCC")
	require.True(t, ok)
	require.Equal(t, "4", id)
	require.Equal(t, 4, granules.Len())
}

func TestDateRangeIsInclusiveAtDayGranularity(t *testing.T) {
	r := catalog.DateRange{
		Start: time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	require.True(t, r.Contains(time.Date(2020, time.June, 30, 23, 59, 0, 0, time.UTC)))
	require.True(t, r.Contains(day(2020, time.June, 1)))
	require.False(t, r.Contains(day(2020, time.July, 1)))
	require.False(t, r.Contains(day(2020, time.May, 31)))
}

func TestGranuleSetLastWriteWins(t *testing.T) {
	g := catalog.NewGranuleSet()
	g.Add("a", "1")
	g.Add("b", "2")
	g.Add("a", "3")

	require.Equal(t, []string{"a", "b"}, g.Names())
	id, _ := g.JobID("a")
	require.Equal(t, "3", id)
	_, ok := g.JobID("c")
	require.False(t, ok)
}

func TestSortedAcquisitionDates(t *testing.T) {
	products := []hyp3.Product{
		{Name: "S1A_IW_20200703T010101_DVP_RTC30_G_gpuned_ABCD"},
		{Name: "S1A_IW_20200101T010101_DVP_RTC30_G_gpuned_ABCD"},
		{Name: "unrelated"},
		{Name: "S1B_IW_20200615T010101_DVP_RTC30_G_gpuned_ABCD"},
	}
	require.Equal(t, []string{"20200101", "20200615", "20200703"}, catalog.SortedAcquisitionDates(products, false))
}

func TestSortedAcquisitionDatesPaired(t *testing.T) {
	products := []hyp3.Product{
		{Name: "S1AA_20200703T010101_20200615T010101_VVP012_INT80_G_ueF_ABCD"},
		{Name: "S1AB_20200210T010101-20200101T010101_VVP024_INT80_G_ueF_EFGH"},
		{Name: "S1A_IW_20200703T010101_DVP_RTC30"},
	}
	require.Equal(t,
		[]string{"20200101", "20200210", "20200615", "20200703"},
		catalog.SortedAcquisitionDates(products, true),
	)
}

func TestDailyOptions(t *testing.T) {
	days, err := catalog.DailyOptions([]string{"20200703", "20200629", "20200701"})
	require.NoError(t, err)
	require.Len(t, days, 5)
	require.Equal(t, day(2020, time.June, 29), days[0])
	require.Equal(t, day(2020, time.July, 3), days[4])

	_, err = catalog.DailyOptions(nil)
	require.Error(t, err)
	_, err = catalog.DailyOptions([]string{"2020-07-01"})
	require.Error(t, err)
}
