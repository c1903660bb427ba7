package snapshot_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pseudoc/instr"
	"github.com/sarchlab/pseudoc/snapshot"
)

var _ = Describe("Snapshot", func() {
	var s *snapshot.Snapshot

	BeforeEach(func() {
		s = snapshot.NewBuilder().
			WithSection(snapshot.Section{
				Name: ".text", Start: 0x401000, Size: 0x100,
			}).
			WithSection(snapshot.Section{
				Name: ".rodata", Start: 0x402000, IsData: true,
				Data: []byte("Hello\tworld\n\x00\x01tail"),
			}).
			WithSymbol(0x401000, "main").
			WithLabel(0x401020, "loop").
			WithVariable(0x401004, 1, "var_8").
			Build()
	})

	It("should find sections by address", func() {
		name, isData, ok := s.Section(0x401080)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal(".text"))
		Expect(isData).To(BeFalse())

		name, isData, ok = s.Section(0x402003)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal(".rodata"))
		Expect(isData).To(BeTrue())

		_, _, ok = s.Section(0x401100)
		Expect(ok).To(BeFalse())
		_, _, ok = s.Section(0x400000)
		Expect(ok).To(BeFalse())
	})

	It("should keep sections ordered", func() {
		secs := s.Sections()
		Expect(secs).To(HaveLen(2))
		Expect(secs[0].Name).To(Equal(".text"))

		sec, ok := s.SectionByName(".rodata")
		Expect(ok).To(BeTrue())
		Expect(sec.Size).To(Equal(uint64(18)))
	})

	It("should answer symbol, label and variable lookups", func() {
		name, ok := s.Symbol(0x401000)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("main"))

		name, ok = s.Label(0x401020)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("loop"))

		_, ok = s.Label(0x401000)
		Expect(ok).To(BeFalse())

		name, ok = s.Variable(instr.Inst{Address: 0x401004}, 1)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("var_8"))

		_, ok = s.Variable(instr.Inst{Address: 0x401004}, 0)
		Expect(ok).To(BeFalse())
	})

	It("should preview printable strings", func() {
		Expect(s.Preview(0x402000, 30)).To(Equal(`Hello\tworld\n`))
		Expect(s.Preview(0x402006, 30)).To(Equal(`world\n`))
		Expect(s.Preview(0x402000, 5)).To(Equal("Hello..."))
		Expect(s.Preview(0x40200c, 30)).To(BeEmpty())
		Expect(s.Preview(0x401000, 30)).To(BeEmpty())
		Expect(s.Preview(0x402000, 0)).To(BeEmpty())
	})

	It("should derive new snapshots without changing the original", func() {
		derived := s.Builder().WithLabel(0x401040, "done").Build()

		_, ok := derived.Label(0x401040)
		Expect(ok).To(BeTrue())
		_, ok = derived.Symbol(0x401000)
		Expect(ok).To(BeTrue())

		_, ok = s.Label(0x401040)
		Expect(ok).To(BeFalse())
	})

	It("should know nothing when empty", func() {
		e := snapshot.Empty()

		_, ok := e.Symbol(0x401000)
		Expect(ok).To(BeFalse())
		_, _, ok = e.Section(0x401000)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Printable", func() {
	It("should accept ASCII text and whitespace", func() {
		Expect(snapshot.IsPrintable('a')).To(BeTrue())
		Expect(snapshot.IsPrintable('\t')).To(BeTrue())
		Expect(snapshot.IsPrintable(0)).To(BeFalse())
		Expect(snapshot.IsPrintable(0x7f)).To(BeFalse())
	})

	It("should escape C strings", func() {
		Expect(snapshot.EscapeBytes([]byte("a\"b\\\n\x01"))).
			To(Equal(`a\"b\\\n\x01`))
	})
})
