package stream

import (
	"cmp"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/recordflow/internal/testutil"
	rferrors "github.com/vnykmshr/recordflow/pkg/common/errors"
	"github.com/vnykmshr/recordflow/pkg/metrics"
	"github.com/vnykmshr/recordflow/pkg/record"
)

func TestFromSlice(t *testing.T) {
	stream := FromSlice([]int{1, 2, 3, 4, 5})
	defer stream.Close()

	result, err := stream.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3, 4, 5})
}

func TestEmpty(t *testing.T) {
	result, err := Empty[int]().ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)

	count, err := Empty[string]().Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(0))
}

func TestFromChannel(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "IT"
	ch <- "HR"
	ch <- "Finance"
	close(ch)

	result, err := FromChannel(ch).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []string{"IT", "HR", "Finance"})
}

func TestFilterPreservesOrder(t *testing.T) {
	result, err := FromSlice(record.Sample()).
		Filter(record.InDepartment("IT")).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)

	names := make([]string, len(result))
	for i, r := range result {
		names[i] = r.Name()
	}
	testutil.AssertSliceEqual(t, names, []string{"John", "Adam", "Mike", "Robert", "Tom"})
}

func TestFilterComposition(t *testing.T) {
	people := record.Sample()
	p := record.InDepartment("IT")
	q := record.AgeAtLeast(30)

	chained, err := FromSlice(people).Filter(p).Filter(q).ToSlice(context.Background())
	testutil.AssertNoError(t, err)

	combined, err := FromSlice(people).
		Filter(func(r record.Record) bool { return p(r) && q(r) }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertSliceEqual(t, chained, combined)
	testutil.AssertEqual(t, len(chained), 3) // Mike, Robert, Tom
}

func TestMapProjection(t *testing.T) {
	people := record.Sample()
	names, err := Map(FromSlice(people), record.Record.Name).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(names), len(people))
	testutil.AssertEqual(t, names[0], "John")
	testutil.AssertEqual(t, names[len(names)-1], "Emily")

	upper, err := FromSlice(names).Map(strings.ToUpper).Limit(2).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, upper, []string{"JOHN", "JANE"})
}

func TestChainedOperations(t *testing.T) {
	stream := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}).
		Filter(func(x int) bool { return x%2 == 0 }). // 2, 4, 6, 8, 10
		Map(func(x int) int { return x * 3 }).        // 6, 12, 18, 24, 30
		Skip(1).                                      // 12, 18, 24, 30
		Limit(2)                                      // 12, 18
	defer stream.Close()

	result, err := stream.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{12, 18})
}

func TestDistinct(t *testing.T) {
	salaries, err := Distinct(FromSlice([]float64{100, 100, 200})).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, salaries, []float64{100, 200})

	result, err := Distinct(FromSlice([]int{3, 1, 3, 2, 1})).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 1, 2})
}

func TestDistinctBy(t *testing.T) {
	firstPerDept, err := DistinctBy(FromSlice(record.Sample()), record.Record.Department).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, len(firstPerDept), 3)
	testutil.AssertEqual(t, firstPerDept[0].Name(), "John")
	testutil.AssertEqual(t, firstPerDept[1].Name(), "Jane")
	testutil.AssertEqual(t, firstPerDept[2].Name(), "Eve")
}

func TestSortedIsStable(t *testing.T) {
	byDept := func(a, b record.Record) int { return cmp.Compare(a.Department(), b.Department()) }

	result, err := FromSlice(record.Sample()).Sorted(byDept).ToSlice(context.Background())
	testutil.AssertNoError(t, err)

	// Finance first, in original relative order
	testutil.AssertEqual(t, result[0].Name(), "Eve")
	testutil.AssertEqual(t, result[1].Name(), "David")
	testutil.AssertEqual(t, result[2].Name(), "Anna")
	testutil.AssertEqual(t, result[3].Name(), "Emily")
}

func TestSortedIsIdempotent(t *testing.T) {
	bySalaryDesc := func(a, b record.Record) int { return cmp.Compare(b.Salary(), a.Salary()) }

	once, err := FromSlice(record.Sample()).Sorted(bySalaryDesc).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	twice, err := FromSlice(once).Sorted(bySalaryDesc).ToSlice(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertSliceEqual(t, twice, once)
	testutil.AssertEqual(t, once[0].Name(), "Robert")
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	input := []int{3, 1, 2}
	_, err := FromSlice(input).Sorted(cmp.Compare[int]).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, input, []int{3, 1, 2})
}

func TestSkipAndLimit(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 4, 5}).Skip(2).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 4, 5})

	result, err = FromSlice([]int{1, 2, 3, 4, 5}).Limit(3).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})

	result, err = FromSlice([]int{1, 2, 3}).Skip(10).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)

	result, err = FromSlice([]int{1, 2, 3}).Limit(0).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)
}

func TestPeek(t *testing.T) {
	var peeked []int

	result, err := FromSlice([]int{1, 2, 3}).
		Peek(func(x int) { peeked = append(peeked, x) }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
	testutil.AssertSliceEqual(t, peeked, []int{1, 2, 3})
}

func TestForEachIndexed(t *testing.T) {
	var lines []string
	err := FromSlice([]string{"Robert", "David", "Mike"}).ForEachIndexed(context.Background(), func(i int, name string) {
		lines = append(lines, string(rune('1'+i))+". "+name)
	})
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, lines, []string{"1. Robert", "2. David", "3. Mike"})
}

func TestReduce(t *testing.T) {
	sum, err := FromSlice([]int{1, 2, 3, 4, 5}).Reduce(context.Background(), 0, func(acc, x int) int {
		return acc + x
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sum, 15)

	empty, err := Empty[int]().Reduce(context.Background(), 42, func(acc, x int) int { return acc + x })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, empty, 42)
}

func TestReduceWith(t *testing.T) {
	total, err := ReduceWith(context.Background(), FromSlice(record.Sample()), 0.0,
		func(acc float64, r record.Record) float64 { return acc + r.Salary() },
		func(a, b float64) float64 { return a + b },
	)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, total, 785000.0)
}

func TestFindFirst(t *testing.T) {
	first, err := FromSlice([]int{10, 20, 30}).FindFirst(context.Background())
	testutil.AssertNoError(t, err)
	value, ok := first.Get()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, value, 10)

	none, err := Empty[int]().FindFirst(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, none.IsPresent(), false)
	testutil.AssertEqual(t, none.OrElse(-1), -1)

	anyValue, err := Of("a", "b").FindAny(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, anyValue.IsPresent(), true)
}

func TestFindFirstStopsPulling(t *testing.T) {
	pulled := 0
	_, err := Generate(func() int {
		pulled++
		return pulled
	}).FindFirst(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pulled, 1)
}

func TestMatchers(t *testing.T) {
	ctx := context.Background()

	hasEven, err := FromSlice([]int{1, 2, 3}).AnyMatch(ctx, func(x int) bool { return x%2 == 0 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, hasEven, true)

	allEven, err := FromSlice([]int{2, 4, 5}).AllMatch(ctx, func(x int) bool { return x%2 == 0 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, allEven, false)

	allOnEmpty, err := Empty[int]().AllMatch(ctx, func(int) bool { return false })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, allOnEmpty, true)

	noneEven, err := FromSlice([]int{1, 3, 5}).NoneMatch(ctx, func(x int) bool { return x%2 == 0 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, noneEven, true)
}

func TestMinMax(t *testing.T) {
	bySalary := func(a, b record.Record) int { return cmp.Compare(a.Salary(), b.Salary()) }

	lowest, err := FromSlice(record.Sample()).Min(context.Background(), bySalary)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, lowest.OrElse(record.Record{}).Name(), "Sarah")

	highest, err := FromSlice(record.Sample()).Max(context.Background(), bySalary)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, highest.OrElse(record.Record{}).Name(), "Robert")
}

func TestMinMaxTieBreakFirstWins(t *testing.T) {
	people := []record.Record{
		record.New("First", 30, 100, "IT"),
		record.New("Second", 30, 100, "IT"),
	}
	byAge := func(a, b record.Record) int { return cmp.Compare(a.Age(), b.Age()) }

	lowest, err := FromSlice(people).Min(context.Background(), byAge)
	testutil.AssertNoError(t, err)
	highest, err := FromSlice(people).Max(context.Background(), byAge)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, lowest.OrElse(record.Record{}).Name(), "First")
	testutil.AssertEqual(t, highest.OrElse(record.Record{}).Name(), "First")
}

func TestMaxOnEmptyIsAbsent(t *testing.T) {
	maxSalary, err := Map(FromSlice([]record.Record{}), record.Record.Salary).
		Max(context.Background(), cmp.Compare[float64])
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, maxSalary.IsPresent(), false)

	_, err = maxSalary.OrError(errors.New("no salaries"))
	testutil.AssertError(t, err)
}

func TestFlatMap(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3}).
		FlatMap(func(x int) Stream[int] { return FromSlice([]int{x, x}) }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 1, 2, 2, 3, 3})

	letters, err := FlatMap(Of("IT", "HR"), func(s string) Stream[rune] {
		return FromSlice([]rune(s))
	}).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, letters, []rune{'I', 'T', 'H', 'R'})
}

func TestGenerateAndIterate(t *testing.T) {
	counter := 0
	result, err := Generate(func() int {
		counter++
		return counter
	}).Limit(5).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3, 4, 5})

	increments, err := Iterate(50000.0, func(s float64) float64 { return s * 2 }).
		Limit(4).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, increments, []float64{50000, 100000, 200000, 400000})
}

func TestDerivedStreamsAreIndependent(t *testing.T) {
	base := FromSlice(record.Sample())
	it := base.Filter(record.InDepartment("IT"))
	hr := base.Filter(record.InDepartment("HR"))

	itCount, err := it.Count(context.Background())
	testutil.AssertNoError(t, err)
	hrCount, err := hr.Count(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, itCount, int64(5))
	testutil.AssertEqual(t, hrCount, int64(3))
}

func TestSingleUseSourceRejectsSecondPipeline(t *testing.T) {
	even := func(x int) bool { return x%2 == 0 }
	odd := func(x int) bool { return x%2 != 0 }

	base := New[int](&sliceSource[int]{slice: []int{1, 2, 3, 4}})
	evens, err := base.Filter(even).Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, evens, int64(2))

	_, err = base.Filter(odd).Count(context.Background())
	testutil.AssertErrorIs(t, err, ErrStreamClosed)
	testutil.AssertErrorIs(t, err, rferrors.ErrClosed)
}

func TestFromFuncStreamsAreIndependent(t *testing.T) {
	even := func(x int) bool { return x%2 == 0 }
	odd := func(x int) bool { return x%2 != 0 }

	base := FromFunc(func() Source[int] {
		return &sliceSource[int]{slice: []int{1, 2, 3, 4, 5}}
	})
	evens, err := base.Filter(even).Count(context.Background())
	testutil.AssertNoError(t, err)
	odds, err := base.Filter(odd).Count(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, evens, int64(2))
	testutil.AssertEqual(t, odds, int64(3))
}

func TestClosedStream(t *testing.T) {
	stream := FromSlice([]int{1, 2, 3})
	_, err := stream.Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stream.IsClosed(), true)

	_, err = stream.ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrStreamClosed)

	testutil.AssertNoError(t, stream.Close())
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	stream := Generate(func() int {
		time.Sleep(5 * time.Millisecond)
		return 1
	}).Limit(100)

	_, err := stream.ToSlice(ctx)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
}

func TestCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := FromSlice([]int{1, 2, 3}).ForEach(ctx, func(int) {
		t.Fatal("action must not run on a canceled context")
	})
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestInstrument(t *testing.T) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	base := Instrument(FromSlice(record.Sample()), "employees", reg)

	_, err := base.Filter(record.InDepartment("IT")).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	_, err = Map(base, record.Record.Salary).Count(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, promtest.ToFloat64(reg.QueryOperations.WithLabelValues("to_slice", "employees")), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.QueryItems.WithLabelValues("to_slice", "employees")), 5.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.QueryItems.WithLabelValues("count", "employees")), 12.0)
}

func TestOptional(t *testing.T) {
	some := Some("Eve")
	none := None[string]()

	testutil.AssertEqual(t, some.OrElse("x"), "Eve")
	testutil.AssertEqual(t, none.OrElse("x"), "x")
	testutil.AssertEqual(t, none.OrElseGet(func() string { return "y" }), "y")
	testutil.AssertEqual(t, some.String(), "Optional[Eve]")
	testutil.AssertEqual(t, none.String(), "Optional.empty")

	called := false
	none.IfPresent(func(string) { called = true })
	testutil.AssertEqual(t, called, false)
	some.IfPresent(func(string) { called = true })
	testutil.AssertEqual(t, called, true)

	v, err := some.OrError(errors.New("absent"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, "Eve")
}

func BenchmarkStreamOperations(b *testing.B) {
	slice := make([]int, 1000)
	for i := range slice {
		slice[i] = i
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := FromSlice(slice).
			Filter(func(x int) bool { return x%2 == 0 }).
			Map(func(x int) int { return x * 2 }).
			Limit(100).
			Count(context.Background())
		if err != nil {
			b.Fatal(err)
		}
	}
}
