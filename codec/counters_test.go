package codec

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	. "github.com/smartystreets/goconvey/convey"
)

func genCounters() gopter.Gen {
	fields := reflect.TypeOf(Counters{}).NumField()
	gens := make([]gopter.Gen, fields)
	for i := range gens {
		gens[i] = gen.IntRange(0, 10_000)
	}
	return gopter.CombineGens(gens...).Map(func(values []interface{}) Counters {
		var c Counters
		v := reflect.ValueOf(&c).Elem()
		for i, value := range values {
			v.Field(i).SetInt(int64(value.(int)))
		}
		return c
	})
}

func TestProperty_Merge(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("merge is commutative", prop.ForAll(
		func(a, b Counters) bool {
			return Merge(a, b) == Merge(b, a)
		},
		genCounters(), genCounters(),
	))

	properties.Property("merge is associative", prop.ForAll(
		func(a, b, c Counters) bool {
			return Merge(Merge(a, b), c) == Merge(a, Merge(b, c))
		},
		genCounters(), genCounters(), genCounters(),
	))

	properties.Property("the zero value is the identity", prop.ForAll(
		func(a Counters) bool {
			return Merge(a, Counters{}) == a
		},
		genCounters(),
	))

	properties.TestingRun(t)
}

func TestMerge(t *testing.T) {
	Convey("Given counters with every field set", t, func() {
		var a Counters
		v := reflect.ValueOf(&a).Elem()
		for i := 0; i < v.NumField(); i++ {
			v.Field(i).SetInt(int64(i + 1))
		}

		Convey("Every field is reflected in the merge", func() {
			merged := reflect.ValueOf(Merge(a, Counters{}))
			for i := 0; i < merged.NumField(); i++ {
				So(merged.Field(i).Int(), ShouldEqual, int64(i+1))
			}
		})

		Convey("Counts are summed", func() {
			m := Merge(a, a)
			So(m.DecoderInitCount, ShouldEqual, 2*a.DecoderInitCount)
			So(m.DroppedOutputBufferCount, ShouldEqual, 2*a.DroppedOutputBufferCount)
		})

		Convey("The consecutive-drop run keeps the maximum", func() {
			b := Counters{MaxConsecutiveDroppedOutputBufferCount: 3}
			So(Merge(a, b).MaxConsecutiveDroppedOutputBufferCount, ShouldEqual, a.MaxConsecutiveDroppedOutputBufferCount)
			b.MaxConsecutiveDroppedOutputBufferCount = 100
			So(Merge(a, b).MaxConsecutiveDroppedOutputBufferCount, ShouldEqual, 100)
		})
	})
}

func TestAggregator(t *testing.T) {
	Convey("Given an aggregator", t, func() {
		var agg Aggregator

		Convey("Absorbing moves the live counters", func() {
			live := Counters{DecoderInitCount: 1, RenderedOutputBufferCount: 240, DroppedOutputBufferCount: 2}
			agg.Absorb(&live)

			So(live.IsZero(), ShouldBeTrue)
			So(agg.Snapshot().RenderedOutputBufferCount, ShouldEqual, 240)
			So(agg.Periods(), ShouldEqual, 1)

			Convey("Activity after the transfer does not leak into the snapshot", func() {
				live.RenderedOutputBufferCount = 10
				So(agg.Snapshot().RenderedOutputBufferCount, ShouldEqual, 240)

				Convey("Until the next disable", func() {
					agg.Absorb(&live)
					So(agg.Snapshot().RenderedOutputBufferCount, ShouldEqual, 250)
					So(agg.Snapshot().DecoderInitCount, ShouldEqual, 1)
					So(agg.Periods(), ShouldEqual, 2)
				})
			})
		})

		Convey("Adding a reported snapshot counts one period", func() {
			period := Counters{RenderedOutputBufferCount: 30, MaxConsecutiveDroppedOutputBufferCount: 4}
			agg.Add(period)
			agg.Add(Counters{RenderedOutputBufferCount: 12, MaxConsecutiveDroppedOutputBufferCount: 1})

			So(period.RenderedOutputBufferCount, ShouldEqual, 30)
			So(agg.Snapshot().RenderedOutputBufferCount, ShouldEqual, 42)
			So(agg.Snapshot().MaxConsecutiveDroppedOutputBufferCount, ShouldEqual, 4)
			So(agg.Periods(), ShouldEqual, 2)
		})

		Convey("Absorbing nil is ignored", func() {
			agg.Absorb(nil)
			So(agg.Periods(), ShouldEqual, 0)
			So(agg.Snapshot().IsZero(), ShouldBeTrue)
		})
	})
}
